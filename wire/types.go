// Package wire implements the binary codec for the server's typed-value
// wire protocol: ~20 scalar/vector kinds, typed nulls, tables and keyed
// tables, 8-byte frame headers, and the server's LZ-style compression.
//
// Every value that crosses the wire is a TV ("typed value"). TV is a
// closed interface implemented only by the types in this file; callers
// type-switch on it the way database/sql callers type-switch on
// driver.Value.
package wire

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is the wire type code for a scalar or vector. A positive code
// names a vector of that element kind; the sign is added back by the
// encoder (see encodeValue/encodeVector in encode.go). Kind
// itself always holds the unsigned/base code from the type table.
type Kind int8

// Scalar/vector kinds. The numeric values are the server's type codes
// and must not be renumbered.
const (
	KMixed     Kind = 0 // mixed-list: heterogeneous list of TV
	KBool      Kind = 1
	KGUID      Kind = 2
	KByte      Kind = 4
	KShort     Kind = 5
	KInt       Kind = 6
	KLong      Kind = 7
	KReal      Kind = 8
	KFloat     Kind = 9
	KChar      Kind = 10
	KSymbol    Kind = 11
	KTimestamp Kind = 12 // ns since 2000-01-01
	KMonth     Kind = 13 // months since 2000-01
	KDate      Kind = 14 // days since 2000-01-01
	KDatetime  Kind = 15 // days since 2000-01-01, fractional
	KTimespan  Kind = 16 // ns
	KMinute    Kind = 17
	KSecond    Kind = 18
	KTime      Kind = 19 // ms

	KTable   Kind = 98
	KDict    Kind = 99
	KNullary Kind = 101
	KError   Kind = -128
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

var kindNames = map[Kind]string{
	KMixed: "mixed", KBool: "boolean", KGUID: "guid", KByte: "byte",
	KShort: "short", KInt: "int", KLong: "long", KReal: "real", KFloat: "float",
	KChar: "char", KSymbol: "symbol", KTimestamp: "timestamp", KMonth: "month",
	KDate: "date", KDatetime: "datetime", KTimespan: "timespan", KMinute: "minute",
	KSecond: "second", KTime: "time", KTable: "table", KDict: "dict",
	KNullary: "nullary", KError: "error",
}

// Attr is a vector attribute hint. It carries no semantics for the
// client beyond round-tripping it unchanged.
type Attr byte

const (
	AttrNone    Attr = 0
	AttrSorted  Attr = 1
	AttrUnique  Attr = 2
	AttrParted  Attr = 3
	AttrGrouped Attr = 5
)

// Named scalar payload types. Each wraps its kind's native wire
// representation. A Value (or Vector element) holding nil of the
// appropriate slot means "typed null of this Kind" — see Value.IsNull.
type (
	Bool      bool
	Byte      byte
	Short     int16
	Int       int32
	Long      int64
	Real      float32
	Float     float64
	Char      byte
	Symbol    string
	Timestamp int64
	Month     int32
	Date      int32
	Datetime  float64
	Timespan  int64
	Minute    int32
	Second    int32
	Time      int32
)

// GUID is the native representation of the guid scalar kind (type code
// 2): a 16-byte value, backed by google/uuid so callers can use its
// parsing/formatting helpers directly. The all-zero UUID is the null
// sentinel.
type GUID = uuid.UUID

// TV is the universe of typed values the codec can encode/decode:
// scalars, vectors, tables, keyed tables, dicts, and the error variant.
type TV interface {
	Kind() Kind
}

// Value is a scalar TV. Val holds one of the named scalar types above,
// or nil to represent Null(K) — a typed null distinguishable at runtime
// by K. Two nulls are equal only when their K matches;
// Go struct/interface equality already gives this for free since K is
// compared alongside Val.
type Value struct {
	K   Kind
	Val any
}

func (v Value) Kind() Kind  { return v.K }
func (v Value) IsNull() bool { return v.Val == nil }

// NewNull returns the typed null of kind k.
func NewNull(k Kind) Value { return Value{K: k} }

// Vector is a uniform-kind sequence with an attribute tag. Elems holds
// native scalar values (same convention as Value.Val); a nil element is
// Null(K). For KMixed, Elems holds TV values instead (a mixed-list is a
// list of fully-typed elements, not a uniform scalar run).
type Vector struct {
	K     Kind
	Attr  Attr
	Elems []any
}

func (v Vector) Kind() Kind { return v.K }
func (v Vector) Len() int   { return len(v.Elems) }

// Column is one named column of a Table. Data is always a Vector (or,
// for a mixed-list column, a Vector of Kind KMixed).
type Column struct {
	Name string
	Data Vector
}

// Table is an ordered list of equal-length, uniquely-named columns.
type Table struct {
	Columns []Column
}

func (Table) Kind() Kind { return KTable }

// RowCount returns the table's row count (the length of its first
// column, or 0 for a columnless table).
func (t Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Data.Len()
}

// ColumnByName returns the named column and whether it was found.
func (t Table) ColumnByName(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// KeyedTable pairs a key-columns table with a value-columns table, both
// with equal row counts and no overlapping column names. On the wire it
// is a Dict whose Keys/Values are both Table TVs.
type KeyedTable struct {
	Keys   Table
	Values Table
}

func (KeyedTable) Kind() Kind { return KTable }

// Dict is a generic key/value pairing of two TVs (not necessarily
// tables — see KeyedTable for the table/table specialization).
type Dict struct {
	Keys   TV
	Values TV
}

func (Dict) Kind() Kind { return KDict }

// ErrorValue is the decoded form of type code -128: a NUL-terminated
// message from the server. transport.Conn.Receive converts this into an
// errs.QError before it reaches the caller; it only surfaces as a TV
// at the codec/round-trip level.
type ErrorValue struct {
	Message string
}

func (ErrorValue) Kind() Kind { return KError }

// Nullary is the generic "no value" TV (wire type code 101), used for
// an empty-argument expression slot (e.g. a bare "::").
type Nullary struct{}

func (Nullary) Kind() Kind { return KNullary }
