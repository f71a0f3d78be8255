package model

import (
	"testing"

	"qgo/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeSchema(t *testing.T) *SchemaDescriptor {
	t.Helper()
	s, err := New("trade",
		Scalar("sym", wire.KSymbol),
		Scalar("price", wire.KFloat),
		Scalar("size", wire.KLong),
	)
	require.NoError(t, err)
	return s
}

func TestGenerateCreateTableUnkeyed(t *testing.T) {
	s := tradeSchema(t)
	assert.Equal(t, "trade:([] sym:`s$(); price:`f$(); size:`j$())", GenerateCreateTable(s))
}

func TestGenerateCreateTableWithKeys(t *testing.T) {
	s, err := New("quote",
		Scalar("sym", wire.KSymbol).Key(),
		Scalar("time", wire.KTimestamp).Key(),
		Scalar("bid", wire.KFloat),
	)
	require.NoError(t, err)
	assert.Equal(t, "quote:([sym:`s$(); time:`p$()] bid:`f$())", GenerateCreateTable(s))
}

func TestGenerateCreateTableMixedListField(t *testing.T) {
	s, err := New("book", MixedOf("levels", wire.KFloat))
	require.NoError(t, err)
	assert.Equal(t, "book:([] levels:`F$())", GenerateCreateTable(s))
}

func TestDuplicateFieldNameRejected(t *testing.T) {
	_, err := New("bad", Scalar("sym", wire.KSymbol), Scalar("sym", wire.KLong))
	assert.Error(t, err)
}

func TestReflectFromMeta(t *testing.T) {
	meta := wire.Table{Columns: []wire.Column{
		{Name: "c", Data: wire.Vector{K: wire.KSymbol, Elems: []any{wire.Symbol("sym"), wire.Symbol("price")}}},
		{Name: "t", Data: wire.Vector{K: wire.KChar, Elems: []any{wire.Char('s'), wire.Char('f')}}},
		{Name: "a", Data: wire.Vector{K: wire.KChar, Elems: []any{wire.Char(' '), wire.Char('s')}}},
	}}
	s, err := ReflectFromMeta("trade", meta, []string{"sym"})
	require.NoError(t, err)
	require.Len(t, s.Fields, 2)
	assert.True(t, s.Fields[0].PrimaryKey)
	assert.False(t, s.Fields[1].PrimaryKey)
	assert.Equal(t, wire.KFloat, s.Fields[1].Kind)
	assert.Equal(t, wire.AttrSorted, s.Fields[1].Attr)
}

func TestReflectFromMetaMixedListUppercase(t *testing.T) {
	meta := wire.Table{Columns: []wire.Column{
		{Name: "c", Data: wire.Vector{K: wire.KSymbol, Elems: []any{wire.Symbol("levels")}}},
		{Name: "t", Data: wire.Vector{K: wire.KChar, Elems: []any{wire.Char('F')}}},
	}}
	s, err := ReflectFromMeta("book", meta, nil)
	require.NoError(t, err)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, wire.KMixed, s.Fields[0].Kind)
	require.NotNil(t, s.Fields[0].ElemKind)
	assert.Equal(t, wire.KFloat, *s.Fields[0].ElemKind)
}

func TestRegistry(t *testing.T) {
	s := tradeSchema(t)
	Register(s)
	defer Unregister("trade")
	got, ok := Lookup("trade")
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestResultSetRowIteration(t *testing.T) {
	tbl := wire.Table{Columns: []wire.Column{
		{Name: "sym", Data: wire.Vector{K: wire.KSymbol, Elems: []any{wire.Symbol("AAPL"), wire.Symbol("GOOG")}}},
		{Name: "price", Data: wire.Vector{K: wire.KFloat, Elems: []any{wire.Float(150.25), wire.Float(2800.0)}}},
	}}
	rs, err := NewResultSet(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Len())

	rows, err := rs.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	sym0, err := rows[0].Get("sym")
	require.NoError(t, err)
	assert.Equal(t, wire.Symbol("AAPL"), sym0)

	price1, err := rows[1].Get("price")
	require.NoError(t, err)
	assert.Equal(t, wire.Float(2800.0), price1)
}

func TestResultSetSynthesizesMixedListColumn(t *testing.T) {
	tbl := wire.Table{Columns: []wire.Column{
		{Name: "levels", Data: wire.Vector{K: wire.KMixed, Elems: []any{
			wire.Vector{K: wire.KFloat, Elems: []any{wire.Float(1.0)}},
		}}},
	}}
	rs, err := NewResultSet(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, wire.KMixed, rs.Schema().Fields[0].Kind)
}

func TestResultSetExport(t *testing.T) {
	tbl := wire.Table{Columns: []wire.Column{
		{Name: "sym", Data: wire.Vector{K: wire.KSymbol, Elems: []any{wire.Symbol("AAPL")}}},
	}}
	rs, err := NewResultSet(tbl, nil)
	require.NoError(t, err)

	var gotCols []string
	var gotRows [][]any
	exp := exporterFunc(func(cols []string, rows [][]any) error {
		gotCols, gotRows = cols, rows
		return nil
	})
	require.NoError(t, rs.Export(exp))
	assert.Equal(t, []string{"sym"}, gotCols)
	require.Len(t, gotRows, 1)
	assert.Equal(t, wire.Symbol("AAPL"), gotRows[0][0])
}

type exporterFunc func(columns []string, rows [][]any) error

func (f exporterFunc) Export(columns []string, rows [][]any) error { return f(columns, rows) }
