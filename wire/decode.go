package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
	"qgo/errs"
)

// Decode deserializes one TV from data, interpreting multi-byte fields
// with order — which must match whatever endianness the frame header
// (or an enclosing call) declared. Decode is total over the type table:
// malformed input or an unrecognized type code yields a
// DeserializationError rather than a panic.
func Decode(data []byte, order binary.ByteOrder) (TV, error) {
	c := newCursor(data)
	tv, err := decodeInto(c, order)
	if err != nil {
		return nil, err
	}
	if c.remaining() != 0 {
		return nil, &errs.DeserializationError{Kind: "trailing-bytes", Err: fmt.Errorf("%d unconsumed bytes after value", c.remaining())}
	}
	return tv, nil
}

func decodeInto(c *cursor, order binary.ByteOrder) (TV, error) {
	codeByte, err := c.byte()
	if err != nil {
		return nil, &errs.DeserializationError{Kind: "type-code", Err: err}
	}
	code := int8(codeByte)

	switch {
	case code == int8(KTable):
		return decodeTable(c, order)
	case code == int8(KDict):
		return decodeDict(c, order)
	case code == int8(KNullary):
		return Nullary{}, nil
	case code == int8(KError):
		msg, err := c.cString()
		if err != nil {
			return nil, &errs.DeserializationError{Kind: "error", Err: err}
		}
		return ErrorValue{Message: msg}, nil
	case code < 0:
		k := Kind(-code)
		val, err := readScalarPayload(c, k, order)
		if err != nil {
			return nil, &errs.DeserializationError{Kind: k.String(), Err: err}
		}
		return Value{K: k, Val: val}, nil
	default:
		k := Kind(code)
		return decodeVectorBody(c, k, order)
	}
}

func decodeVectorBody(c *cursor, k Kind, order binary.ByteOrder) (Vector, error) {
	attrByte, err := c.byte()
	if err != nil {
		return Vector{}, &errs.DeserializationError{Kind: "attribute", Err: err}
	}
	count, err := c.uint32(order)
	if err != nil {
		return Vector{}, &errs.DeserializationError{Kind: "count", Err: err}
	}
	elems := make([]any, 0, count)
	if k == KMixed {
		for i := uint32(0); i < count; i++ {
			tv, err := decodeInto(c, order)
			if err != nil {
				return Vector{}, fmt.Errorf("mixed-list element %d: %w", i, err)
			}
			elems = append(elems, tv)
		}
	} else {
		for i := uint32(0); i < count; i++ {
			val, err := readScalarPayload(c, k, order)
			if err != nil {
				return Vector{}, &errs.DeserializationError{Kind: k.String(), Err: fmt.Errorf("element %d: %w", i, err)}
			}
			elems = append(elems, val)
		}
	}
	return Vector{K: k, Attr: Attr(attrByte), Elems: elems}, nil
}

// readScalarPayload reads the payload for one scalar of kind k and
// returns the native value, or nil when the payload matches the kind's
// typed-null sentinel. Boolean and byte have no sentinel
// and so never decode to nil.
func readScalarPayload(c *cursor, k Kind, order binary.ByteOrder) (any, error) {
	switch k {
	case KBool:
		b, err := c.byte()
		if err != nil {
			return nil, err
		}
		return Bool(b != 0), nil
	case KGUID:
		b, err := c.take(16)
		if err != nil {
			return nil, err
		}
		var g uuid.UUID
		copy(g[:], b)
		if g == (uuid.UUID{}) {
			return nil, nil
		}
		return g, nil
	case KByte:
		b, err := c.byte()
		if err != nil {
			return nil, err
		}
		return Byte(b), nil
	case KShort:
		n, err := c.int16(order)
		if err != nil {
			return nil, err
		}
		if n == nullShort {
			return nil, nil
		}
		return Short(n), nil
	case KInt:
		n, err := c.int32(order)
		if err != nil {
			return nil, err
		}
		if n == nullInt {
			return nil, nil
		}
		return Int(n), nil
	case KLong:
		n, err := c.int64(order)
		if err != nil {
			return nil, err
		}
		if n == nullLong {
			return nil, nil
		}
		return Long(n), nil
	case KReal:
		u, err := c.uint32(order)
		if err != nil {
			return nil, err
		}
		f := math.Float32frombits(u)
		if isNullReal(f) {
			return nil, nil
		}
		return Real(f), nil
	case KFloat:
		u, err := c.uint64(order)
		if err != nil {
			return nil, err
		}
		f := math.Float64frombits(u)
		if isNullFloat(f) {
			return nil, nil
		}
		return Float(f), nil
	case KChar:
		b, err := c.byte()
		if err != nil {
			return nil, err
		}
		if b == nullChar {
			return nil, nil
		}
		return Char(b), nil
	case KSymbol:
		s, err := c.cString()
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return Symbol(s), nil
	case KTimestamp:
		n, err := c.int64(order)
		if err != nil {
			return nil, err
		}
		if n == nullTimestamp {
			return nil, nil
		}
		return Timestamp(n), nil
	case KMonth:
		n, err := c.int32(order)
		if err != nil {
			return nil, err
		}
		if n == nullMonth {
			return nil, nil
		}
		return Month(n), nil
	case KDate:
		n, err := c.int32(order)
		if err != nil {
			return nil, err
		}
		if n == nullDate {
			return nil, nil
		}
		return Date(n), nil
	case KDatetime:
		u, err := c.uint64(order)
		if err != nil {
			return nil, err
		}
		f := math.Float64frombits(u)
		if isNullFloat(f) {
			return nil, nil
		}
		return Datetime(f), nil
	case KTimespan:
		n, err := c.int64(order)
		if err != nil {
			return nil, err
		}
		if n == nullTimespan {
			return nil, nil
		}
		return Timespan(n), nil
	case KMinute:
		n, err := c.int32(order)
		if err != nil {
			return nil, err
		}
		if n == nullMinute {
			return nil, nil
		}
		return Minute(n), nil
	case KSecond:
		n, err := c.int32(order)
		if err != nil {
			return nil, err
		}
		if n == nullSecond {
			return nil, nil
		}
		return Second(n), nil
	case KTime:
		n, err := c.int32(order)
		if err != nil {
			return nil, err
		}
		if n == nullTime {
			return nil, nil
		}
		return Time(n), nil
	default:
		return nil, fmt.Errorf("unknown scalar kind code %d", int8(k))
	}
}

func decodeTable(c *cursor, order binary.ByteOrder) (Table, error) {
	if _, err := c.byte(); err != nil { // table attribute, unused
		return Table{}, &errs.DeserializationError{Kind: "table", Err: err}
	}
	keys, values, err := decodeDictBody(c, order)
	if err != nil {
		return Table{}, err
	}
	return dictPartsToTable(keys, values)
}

func decodeDict(c *cursor, order binary.ByteOrder) (TV, error) {
	keys, values, err := decodeDictBody(c, order)
	if err != nil {
		return nil, err
	}
	if kt, vt, ok := bothTables(keys, values); ok {
		return KeyedTable{Keys: kt, Values: vt}, nil
	}
	return Dict{Keys: keys, Values: values}, nil
}

func decodeDictBody(c *cursor, order binary.ByteOrder) (keys, values TV, err error) {
	keys, err = decodeInto(c, order)
	if err != nil {
		return nil, nil, fmt.Errorf("dict keys: %w", err)
	}
	values, err = decodeInto(c, order)
	if err != nil {
		return nil, nil, fmt.Errorf("dict values: %w", err)
	}
	return keys, values, nil
}

func bothTables(keys, values TV) (Table, Table, bool) {
	kt, ok1 := keys.(Table)
	vt, ok2 := values.(Table)
	return kt, vt, ok1 && ok2
}

func dictPartsToTable(keys, values TV) (Table, error) {
	namesVec, ok := keys.(Vector)
	if !ok || namesVec.K != KSymbol {
		return Table{}, &errs.DeserializationError{Kind: "table", Err: fmt.Errorf("table keys must be a symbol vector, got %T", keys)}
	}
	colsVec, ok := values.(Vector)
	if !ok || colsVec.K != KMixed {
		return Table{}, &errs.DeserializationError{Kind: "table", Err: fmt.Errorf("table values must be a mixed-list vector, got %T", values)}
	}
	if len(namesVec.Elems) != len(colsVec.Elems) {
		return Table{}, &errs.DeserializationError{Kind: "table", Err: fmt.Errorf("column name count %d != column vector count %d", len(namesVec.Elems), len(colsVec.Elems))}
	}
	cols := make([]Column, len(namesVec.Elems))
	for i := range namesVec.Elems {
		name, _ := namesVec.Elems[i].(Symbol)
		vec, ok := colsVec.Elems[i].(Vector)
		if !ok {
			return Table{}, &errs.DeserializationError{Kind: "table", Err: fmt.Errorf("column %d is not a vector: %T", i, colsVec.Elems[i])}
		}
		cols[i] = Column{Name: string(name), Data: vec}
	}
	return Table{Columns: cols}, nil
}
