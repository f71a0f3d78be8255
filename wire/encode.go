package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
	"qgo/errs"
)

// Encode serializes a TV to its wire body (type-code byte(s) + payload).
// Encode always writes little-endian multi-byte fields — the protocol
// permits the client to write little-endian regardless of what the
// server declares.
func Encode(tv TV) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeInto(&buf, tv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeInto(w *bytes.Buffer, tv TV) error {
	switch t := tv.(type) {
	case Value:
		return encodeValue(w, t)
	case Vector:
		return encodeVector(w, t)
	case Table:
		return encodeTable(w, t)
	case KeyedTable:
		return encodeKeyedTable(w, t)
	case Dict:
		return encodeDict(w, t)
	case ErrorValue:
		return encodeError(w, t)
	case Nullary:
		return w.WriteByte(byte(KNullary))
	default:
		return &errs.SerializationError{Kind: "unknown", Err: fmt.Errorf("unsupported TV type %T", tv)}
	}
}

func encodeValue(w *bytes.Buffer, v Value) error {
	if v.K == KMixed || v.K == KTable || v.K == KDict {
		return &errs.SerializationError{Kind: v.K.String(), Err: fmt.Errorf("%s cannot be encoded as a scalar", v.K)}
	}
	if err := w.WriteByte(byte(-int8(v.K))); err != nil {
		return err
	}
	return writeScalarPayload(w, v.K, v.Val)
}

func encodeVector(w *bytes.Buffer, v Vector) error {
	if err := w.WriteByte(byte(v.K)); err != nil {
		return err
	}
	if err := w.WriteByte(byte(v.Attr)); err != nil {
		return err
	}
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(v.Elems)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return err
	}
	if v.K == KMixed {
		for i, el := range v.Elems {
			tv, ok := el.(TV)
			if !ok {
				return &errs.SerializationError{Kind: "mixed", Err: fmt.Errorf("element %d is not a TV: %T", i, el)}
			}
			if err := encodeInto(w, tv); err != nil {
				return err
			}
		}
		return nil
	}
	for i, el := range v.Elems {
		if err := writeScalarPayload(w, v.K, el); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// writeScalarPayload writes the raw payload (no leading type byte) for
// one value of kind k: val is either the native Go value or nil (typed
// null). Used for both scalar Values and uniform-vector elements.
func writeScalarPayload(w *bytes.Buffer, k Kind, val any) error {
	switch k {
	case KBool:
		b := false
		if v, ok := val.(Bool); ok {
			b = bool(v)
		}
		return w.WriteByte(b2u8(b))
	case KGUID:
		g := uuid.UUID{}
		if v, ok := val.(uuid.UUID); ok {
			g = v
		}
		_, err := w.Write(g[:])
		return err
	case KByte:
		b := byte(0)
		if v, ok := val.(Byte); ok {
			b = byte(v)
		}
		return w.WriteByte(b)
	case KShort:
		n := nullShort
		if v, ok := val.(Short); ok {
			n = int16(v)
		}
		return writeU16(w, uint16(n))
	case KInt:
		n := nullInt
		if v, ok := val.(Int); ok {
			n = int32(v)
		}
		return writeU32(w, uint32(n))
	case KLong:
		n := nullLong
		if v, ok := val.(Long); ok {
			n = int64(v)
		}
		return writeU64(w, uint64(n))
	case KReal:
		f := nullReal()
		if v, ok := val.(Real); ok {
			f = float32(v)
		}
		return writeU32(w, math.Float32bits(f))
	case KFloat:
		f := nullFloat()
		if v, ok := val.(Float); ok {
			f = float64(v)
		}
		return writeU64(w, math.Float64bits(f))
	case KChar:
		b := nullChar
		if v, ok := val.(Char); ok {
			b = byte(v)
		}
		return w.WriteByte(b)
	case KSymbol:
		s := ""
		if v, ok := val.(Symbol); ok {
			s = string(v)
		}
		if _, err := w.WriteString(s); err != nil {
			return err
		}
		return w.WriteByte(0)
	case KTimestamp:
		n := nullTimestamp
		if v, ok := val.(Timestamp); ok {
			n = int64(v)
		}
		return writeU64(w, uint64(n))
	case KMonth:
		n := nullMonth
		if v, ok := val.(Month); ok {
			n = int32(v)
		}
		return writeU32(w, uint32(n))
	case KDate:
		n := nullDate
		if v, ok := val.(Date); ok {
			n = int32(v)
		}
		return writeU32(w, uint32(n))
	case KDatetime:
		f := nullFloat()
		if v, ok := val.(Datetime); ok {
			f = float64(v)
		}
		return writeU64(w, math.Float64bits(f))
	case KTimespan:
		n := nullTimespan
		if v, ok := val.(Timespan); ok {
			n = int64(v)
		}
		return writeU64(w, uint64(n))
	case KMinute:
		n := nullMinute
		if v, ok := val.(Minute); ok {
			n = int32(v)
		}
		return writeU32(w, uint32(n))
	case KSecond:
		n := nullSecond
		if v, ok := val.(Second); ok {
			n = int32(v)
		}
		return writeU32(w, uint32(n))
	case KTime:
		n := nullTime
		if v, ok := val.(Time); ok {
			n = int32(v)
		}
		return writeU32(w, uint32(n))
	default:
		return &errs.SerializationError{Kind: k.String(), Err: fmt.Errorf("unknown scalar kind %d", int8(k))}
	}
}

func encodeTable(w *bytes.Buffer, t Table) error {
	if err := w.WriteByte(byte(KTable)); err != nil {
		return err
	}
	if err := w.WriteByte(0); err != nil { // table attribute: always none
		return err
	}
	keys, values := tableToDictParts(t)
	return encodeDictBody(w, keys, values)
}

func encodeKeyedTable(w *bytes.Buffer, kt KeyedTable) error {
	if err := w.WriteByte(byte(KDict)); err != nil {
		return err
	}
	return encodeDictBody(w, kt.Keys, kt.Values)
}

func encodeDict(w *bytes.Buffer, d Dict) error {
	if err := w.WriteByte(byte(KDict)); err != nil {
		return err
	}
	return encodeDictBody(w, d.Keys, d.Values)
}

func encodeDictBody(w *bytes.Buffer, keys, values TV) error {
	if err := encodeInto(w, keys); err != nil {
		return err
	}
	return encodeInto(w, values)
}

func encodeError(w *bytes.Buffer, e ErrorValue) error {
	kErrorKind := KError
	if err := w.WriteByte(byte(kErrorKind)); err != nil {
		return err
	}
	if _, err := w.WriteString(e.Message); err != nil {
		return err
	}
	return w.WriteByte(0)
}

func tableToDictParts(t Table) (keys TV, values TV) {
	names := make([]any, len(t.Columns))
	cols := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = Symbol(c.Name)
		cols[i] = c.Data
	}
	return Vector{K: KSymbol, Elems: names}, Vector{K: KMixed, Elems: cols}
}

func b2u8(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func writeU16(w *bytes.Buffer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU32(w *bytes.Buffer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU64(w *bytes.Buffer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}
