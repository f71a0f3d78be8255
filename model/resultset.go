package model

import (
	"qgo/dataframe"
	"qgo/errs"
	"qgo/wire"
)

// ResultSet is the column-oriented wrapper around a decoded table:
// it stores `{name -> vector}`, and exposes length,
// row iteration (each row a RowView bound to the query's model, or a
// transient model synthesized from the table's own columns), integer
// indexing, column lookup, and an optional DataFrame export hook.
type ResultSet struct {
	schema  *SchemaDescriptor
	order   []string
	columns map[string]wire.Vector
	rows    int
}

// NewResultSet wraps t, binding rows to model when non-nil. When
// model is nil, a transient schema is synthesized from t's own
// columns — the binding rule for anonymous results such as raw().
func NewResultSet(t wire.Table, model *SchemaDescriptor) (*ResultSet, error) {
	if model == nil {
		fields := make([]Field, len(t.Columns))
		for i, c := range t.Columns {
			fields[i] = Scalar(c.Name, c.Data.K)
		}
		var err error
		model, err = New("", fields...)
		if err != nil {
			return nil, err
		}
	}
	order := make([]string, len(t.Columns))
	cols := make(map[string]wire.Vector, len(t.Columns))
	for i, c := range t.Columns {
		order[i] = c.Name
		cols[c.Name] = c.Data
	}
	return &ResultSet{schema: model, order: order, columns: cols, rows: t.RowCount()}, nil
}

// Len returns the row count.
func (rs *ResultSet) Len() int { return rs.rows }

// Schema returns the bound (or synthesized) model.
func (rs *ResultSet) Schema() *SchemaDescriptor { return rs.schema }

// Column returns the named column's vector.
func (rs *ResultSet) Column(name string) (wire.Vector, bool) {
	v, ok := rs.columns[name]
	return v, ok
}

// Row returns the i-th row as a RowView constructed positionally in
// the bound schema's field order.
func (rs *ResultSet) Row(i int) (RowView, error) {
	if i < 0 || i >= rs.rows {
		return RowView{}, &errs.SchemaError{Model: rs.schema.Name, Column: "<row index out of range>"}
	}
	values := make([]any, len(rs.schema.Fields))
	for fi, f := range rs.schema.Fields {
		v, ok := rs.columns[f.Name]
		if !ok {
			continue
		}
		if i < len(v.Elems) {
			values[fi] = v.Elems[i]
		}
	}
	return RowView{schema: rs.schema, index: i, values: values}, nil
}

// Rows returns every row as a RowView slice, in row order.
func (rs *ResultSet) Rows() ([]RowView, error) {
	out := make([]RowView, rs.rows)
	for i := range out {
		r, err := rs.Row(i)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Export hands the result set's data to e, column-major names paired
// with row-major values.
func (rs *ResultSet) Export(e dataframe.Exporter) error {
	rows, err := rs.Rows()
	if err != nil {
		return err
	}
	values := make([][]any, len(rows))
	for i, r := range rows {
		rowVals := make([]any, len(rs.schema.Fields))
		for fi := range rs.schema.Fields {
			rowVals[fi] = r.At(fi)
		}
		values[i] = rowVals
	}
	return e.Export(rs.schema.FieldNames(), values)
}
