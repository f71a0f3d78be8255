package wire

import "math"

// Bit-for-bit null sentinels for each nullable kind's wire encoding.
// Boolean and byte have no sentinel and are therefore encoded as their
// Go zero value regardless of nullity — there is no distinct bit
// pattern for "null" at those two kinds.
var (
	realNullBits  = uint32(0x7FC00000) // canonical quiet NaN
	floatNullBits = uint64(0x7FF8000000000000)
)

func nullReal() float32     { return math.Float32frombits(realNullBits) }
func nullFloat() float64    { return math.Float64frombits(floatNullBits) }
func isNullReal(f float32) bool {
	return math.Float32bits(f) == realNullBits || (math.IsNaN(float64(f)))
}
func isNullFloat(f float64) bool {
	return math.Float64bits(f) == floatNullBits || math.IsNaN(f)
}

const (
	nullShort     = int16(math.MinInt16)
	nullInt       = int32(math.MinInt32)
	nullLong      = int64(math.MinInt64)
	nullChar      = byte(0x20)
	nullTimestamp = int64(math.MinInt64)
	nullMonth     = int32(math.MinInt32)
	nullDate      = int32(math.MinInt32)
	nullTimespan  = int64(math.MinInt64)
	nullMinute    = int32(math.MinInt32)
	nullSecond    = int32(math.MinInt32)
	nullTime      = int32(math.MinInt32)
)
