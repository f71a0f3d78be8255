// Package dataframe is the adapter seam for exporting a ResultSet into
// a third-party DataFrame library. It defines the interface only; no
// actual DataFrame implementation is wired in — that library choice
// belongs to the embedding application, not this client.
package dataframe

// Exporter receives a ResultSet's data as column names paired with a
// row-major value matrix. A real adapter (pandas-via-cgo, gota, an
// Arrow builder, ...) would implement Exporter directly; Stub is the
// only implementation provided here.
type Exporter interface {
	Export(columns []string, rows [][]any) error
}

// Stub is a no-op Exporter. ResultSet.Export uses whichever Exporter
// its caller passes; nothing selects Stub automatically.
type Stub struct{}

// Export discards the data. Useful as a placeholder until a caller
// supplies a real Exporter.
func (Stub) Export(columns []string, rows [][]any) error { return nil }
