// Package discovery implements the service discovery client: resolve
// a (market, environment) pair to a live connection, trying candidate
// nodes in order until one connects. The registry RPC lookup itself is
// an external collaborator behind the Resolver interface — a
// registry.Catalog-backed implementation satisfies it today, and an
// RPC-backed one can slot in without touching Client.
package discovery

import (
	"qgo/errs"
	"qgo/registry"
	"qgo/session"
)

// Resolver maps a (market, env) pair to the candidate entries that
// could serve it, in preference order. registry.Catalog.ByMarket backs
// the CSV-driven case; an RPC-backed resolver would satisfy this same
// interface by calling out to the registry service instead of reading
// a local file.
type Resolver interface {
	Resolve(market, env string) ([]registry.Entry, error)
}

// CatalogResolver adapts a *registry.Catalog to Resolver.
type CatalogResolver struct {
	Catalog *registry.Catalog
	Scheme  registry.Scheme
}

func (c CatalogResolver) Resolve(market, env string) ([]registry.Entry, error) {
	entries := c.Catalog.ByMarket(market, env)
	if len(entries) == 0 {
		return nil, &errs.ServiceNotFoundError{Market: market, Env: env}
	}
	return entries, nil
}

// Client resolves a (market, env) pair and connects to the first
// candidate that succeeds, falling over to the next on connect
// failure.
type Client struct {
	Resolver Resolver
	Scheme   registry.Scheme
	User     string
	Password string
}

// NewCatalogClient is the common case: a CSV-backed catalog, user/pass
// credentials shared across every node in the catalog.
func NewCatalogClient(cat *registry.Catalog, scheme registry.Scheme, user, password string) *Client {
	return &Client{
		Resolver: CatalogResolver{Catalog: cat, Scheme: scheme},
		Scheme:   scheme,
		User:     user,
		Password: password,
	}
}

// Connect resolves (market, env) and opens a Session against the first
// candidate that connects successfully. If every candidate fails, the
// last connection error is returned.
func (c *Client) Connect(market, env string) (*session.Session, error) {
	entries, err := c.Resolver.Resolve(market, env)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, e := range entries {
		dsn, err := e.DSN(c.Scheme, c.User, c.Password)
		if err != nil {
			lastErr = err
			continue
		}
		s, err := session.Connect(session.Options{Transport: dsn.TransportOptions()})
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &errs.ServiceNotFoundError{Market: market, Env: env}
	}
	return nil, lastErr
}
