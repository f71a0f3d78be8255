package model

import "qgo/errs"

// RowView is a lightweight view over one row of a ResultSet,
// constructed positionally from the columns in the bound schema's
// field order. The row's values are copied out of the column vectors
// when the view is built; Get looks them up by field position.
type RowView struct {
	schema *SchemaDescriptor
	index  int
	values []any
}

// Get returns the named column's value for this row.
func (r RowView) Get(name string) (any, error) {
	idx, ok := r.fieldIndex(name)
	if !ok {
		return nil, &errs.SchemaError{Model: r.schema.Name, Column: name}
	}
	return r.values[idx], nil
}

// At returns the i-th column's value for this row, in declared field
// order.
func (r RowView) At(i int) any { return r.values[i] }

// Schema returns the model this row was constructed against.
func (r RowView) Schema() *SchemaDescriptor { return r.schema }

func (r RowView) fieldIndex(name string) (int, bool) {
	for i, f := range r.schema.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}
