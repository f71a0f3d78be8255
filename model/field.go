// Package model implements the declarative schema layer: fields,
// schema descriptors, DDL string generation, server-metadata
// reflection, the process-global model registry, and the
// column-oriented ResultSet/RowView pair that session hands decoded
// tables through.
package model

import "qgo/wire"

// Field is one declared column of a Model: a name, a
// scalar kind (or, for ElemKind != nil, a mixed-list of that element
// kind), an attribute tag, nullability, an optional default, and
// whether it participates in the model's key.
type Field struct {
	Name       string
	Kind       wire.Kind
	ElemKind   *wire.Kind // non-nil: this field is a mixed-list of ElemKind
	Attr       wire.Attr
	Nullable   bool
	Default    wire.TV
	PrimaryKey bool
}

// MixedOf declares a mixed-list field whose elements are of kind elem
// (the "uppercase" type-character columns in server metadata).
func MixedOf(name string, elem wire.Kind) Field {
	e := elem
	return Field{Name: name, Kind: wire.KMixed, ElemKind: &e}
}

// Scalar declares a plain scalar-kind field.
func Scalar(name string, k wire.Kind) Field {
	return Field{Name: name, Kind: k}
}

// Key marks f as a primary-key field, returning the modified copy.
func (f Field) Key() Field { f.PrimaryKey = true; return f }

// Null marks f as nullable, returning the modified copy.
func (f Field) Null() Field { f.Nullable = true; return f }

// WithDefault attaches a default value to f.
func (f Field) WithDefault(v wire.TV) Field { f.Default = v; return f }
