package wire

import (
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, tv TV) TV {
	t.Helper()
	b, err := Encode(tv)
	require.NoError(t, err)
	got, err := Decode(b, binary.LittleEndian)
	require.NoError(t, err)
	return got
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []Value{
		{K: KBool, Val: Bool(true)},
		{K: KByte, Val: Byte(0x7f)},
		{K: KShort, Val: Short(-42)},
		{K: KInt, Val: Int(123456)},
		{K: KLong, Val: Long(-9000000000)},
		{K: KReal, Val: Real(3.5)},
		{K: KFloat, Val: Float(2800.0)},
		{K: KChar, Val: Char('Q')},
		{K: KSymbol, Val: Symbol("AAPL")},
		{K: KTimestamp, Val: Timestamp(123456789)},
		{K: KMonth, Val: Month(5)},
		{K: KDate, Val: Date(100)},
		{K: KDatetime, Val: Datetime(12.5)},
		{K: KTimespan, Val: Timespan(999)},
		{K: KMinute, Val: Minute(61)},
		{K: KSecond, Val: Second(3601)},
		{K: KTime, Val: Time(86399000)},
		{K: KGUID, Val: uuid.MustParse("11111111-1111-1111-1111-111111111111")},
	}
	for _, c := range cases {
		t.Run(c.K.String(), func(t *testing.T) {
			got := roundTrip(t, c)
			gv, ok := got.(Value)
			require.True(t, ok)
			assert.Equal(t, c.K, gv.K)
			assert.Equal(t, c.Val, gv.Val)
		})
	}
}

func TestTypedNullRoundTrip(t *testing.T) {
	kinds := []Kind{KGUID, KShort, KInt, KLong, KReal, KFloat, KChar, KSymbol,
		KTimestamp, KMonth, KDate, KDatetime, KTimespan, KMinute, KSecond, KTime}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			got := roundTrip(t, NewNull(k))
			gv, ok := got.(Value)
			require.True(t, ok)
			assert.Equal(t, k, gv.K)
			assert.True(t, gv.IsNull())
		})
	}
}

func TestTypedNullsAreDistinctAcrossKinds(t *testing.T) {
	a := NewNull(KLong)
	b := NewNull(KDate)
	assert.NotEqual(t, a, b)
	assert.Equal(t, NewNull(KLong), NewNull(KLong))
}

func TestVectorRoundTrip(t *testing.T) {
	v := Vector{
		K:    KLong,
		Attr: AttrSorted,
		Elems: []any{
			Long(1), Long(2), nil, Long(4),
		},
	}
	got := roundTrip(t, v)
	gv, ok := got.(Vector)
	require.True(t, ok)
	assert.Equal(t, v.K, gv.K)
	assert.Equal(t, v.Attr, gv.Attr)
	require.Len(t, gv.Elems, 4)
	assert.Equal(t, Long(1), gv.Elems[0])
	assert.Nil(t, gv.Elems[2])
}

func TestSymbolVectorRoundTrip(t *testing.T) {
	v := Vector{K: KSymbol, Elems: []any{Symbol("AAPL"), Symbol("GOOG"), nil}}
	got := roundTrip(t, v)
	gv := got.(Vector)
	assert.Equal(t, []any{Symbol("AAPL"), Symbol("GOOG"), nil}, gv.Elems)
}

func TestMixedListRoundTrip(t *testing.T) {
	v := Vector{
		K: KMixed,
		Elems: []any{
			Value{K: KLong, Val: Long(1)},
			Value{K: KSymbol, Val: Symbol("x")},
			Vector{K: KInt, Elems: []any{Int(1), Int(2)}},
		},
	}
	got := roundTrip(t, v)
	gv := got.(Vector)
	require.Len(t, gv.Elems, 3)
	assert.Equal(t, Value{K: KLong, Val: Long(1)}, gv.Elems[0])
}

func TestTableRoundTrip(t *testing.T) {
	tbl := Table{Columns: []Column{
		{Name: "sym", Data: Vector{K: KSymbol, Elems: []any{Symbol("AAPL"), Symbol("GOOG")}}},
		{Name: "price", Data: Vector{K: KFloat, Elems: []any{Float(150.25), Float(2800.0)}}},
	}}
	got := roundTrip(t, tbl)
	gt, ok := got.(Table)
	require.True(t, ok)
	require.Len(t, gt.Columns, 2)
	assert.Equal(t, 2, gt.RowCount())
	sym, ok := gt.ColumnByName("sym")
	require.True(t, ok)
	assert.Equal(t, Symbol("AAPL"), sym.Data.Elems[0])
}

func TestKeyedTableRoundTrip(t *testing.T) {
	kt := KeyedTable{
		Keys:   Table{Columns: []Column{{Name: "id", Data: Vector{K: KLong, Elems: []any{Long(1), Long(2)}}}}},
		Values: Table{Columns: []Column{{Name: "val", Data: Vector{K: KFloat, Elems: []any{Float(1.5), Float(2.5)}}}}},
	}
	got := roundTrip(t, kt)
	gkt, ok := got.(KeyedTable)
	require.True(t, ok)
	assert.Equal(t, 2, gkt.Keys.RowCount())
	assert.Equal(t, 2, gkt.Values.RowCount())
}

func TestErrorValueRoundTrip(t *testing.T) {
	got := roundTrip(t, ErrorValue{Message: "type"})
	ge, ok := got.(ErrorValue)
	require.True(t, ok)
	assert.Equal(t, "type", ge.Message)
}

func TestDecodeUnknownTypeCode(t *testing.T) {
	_, err := Decode([]byte{120}, binary.LittleEndian)
	assert.Error(t, err)
}

func TestDecodeTrailingBytes(t *testing.T) {
	b, err := Encode(Value{K: KLong, Val: Long(5)})
	require.NoError(t, err)
	b = append(b, 0xff)
	_, err = Decode(b, binary.LittleEndian)
	assert.Error(t, err)
}
