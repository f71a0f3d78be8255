package model

import "sync"

// registry is the process-global model store: a map keyed by table
// name, guarded by a mutex, populated at model declaration or
// reflection time. SchemaDescriptor never references the registry
// back, so entries cannot form cycles.
var (
	registryMu sync.RWMutex
	registry   = map[string]*SchemaDescriptor{}
)

// Register adds (or replaces) s in the global registry, keyed by its
// table name.
func Register(s *SchemaDescriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[s.Name] = s
}

// Lookup returns the registered descriptor for name, if any.
func Lookup(name string) (*SchemaDescriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// Unregister removes name from the registry. Mainly useful for tests
// that register transient models and want a clean registry afterward.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}
