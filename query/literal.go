package query

import (
	"fmt"
	"math"
	"strings"
	"time"

	"qgo/wire"
)

// epoch is the server's zero point for every date/time kind: 2000-01-01.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// toTV converts a native Go value into the wire scalar a literal
// method argument most likely means: ints become long, floats become
// float, strings become symbols, bools become boolean. Callers who
// need a different kind (short, real, a vector, an explicit symbol vs.
// string) construct the wire.TV themselves and pass it directly —
// toTV only covers the common case of a bare Go literal.
func toTV(v any) wire.TV {
	switch t := v.(type) {
	case wire.TV:
		return t
	case int:
		return wire.Value{K: wire.KLong, Val: wire.Long(t)}
	case int64:
		return wire.Value{K: wire.KLong, Val: wire.Long(t)}
	case int32:
		return wire.Value{K: wire.KInt, Val: wire.Int(t)}
	case float64:
		return wire.Value{K: wire.KFloat, Val: wire.Float(t)}
	case float32:
		return wire.Value{K: wire.KReal, Val: wire.Real(t)}
	case string:
		return wire.Value{K: wire.KSymbol, Val: wire.Symbol(t)}
	case bool:
		return wire.Value{K: wire.KBool, Val: wire.Bool(t)}
	default:
		panic(fmt.Sprintf("query: cannot convert %T to a wire literal", v))
	}
}

// renderLiteral renders tv in the server's literal syntax: symbols as
// `s, strings as "...", dates/times in their
// calendar form, booleans as 0b/1b, numerics with a disambiguating
// suffix where the kind isn't the wire default.
func renderLiteral(tv wire.TV) string {
	switch t := tv.(type) {
	case wire.Value:
		return renderScalar(t.K, t.Val)
	case wire.Vector:
		return renderVector(t)
	default:
		return fmt.Sprintf("%v", tv)
	}
}

func renderScalar(k wire.Kind, val any) string {
	if val == nil {
		return nullLiteral(k)
	}
	switch k {
	case wire.KBool:
		if val.(wire.Bool) {
			return "1b"
		}
		return "0b"
	case wire.KGUID:
		return fmt.Sprintf("%v", val)
	case wire.KByte:
		return fmt.Sprintf("0x%02x", byte(val.(wire.Byte)))
	case wire.KShort:
		return fmt.Sprintf("%dh", int16(val.(wire.Short)))
	case wire.KInt:
		return fmt.Sprintf("%di", int32(val.(wire.Int)))
	case wire.KLong:
		return fmt.Sprintf("%d", int64(val.(wire.Long)))
	case wire.KReal:
		return formatFloatDecimal(float64(val.(wire.Real))) + "e"
	case wire.KFloat:
		return formatFloatDecimal(float64(val.(wire.Float)))
	case wire.KChar:
		return fmt.Sprintf("%q", string(rune(val.(wire.Char))))
	case wire.KSymbol:
		return "`" + string(val.(wire.Symbol))
	case wire.KTimestamp:
		return renderTimestamp(int64(val.(wire.Timestamp)))
	case wire.KMonth:
		return renderMonth(int32(val.(wire.Month)))
	case wire.KDate:
		return renderDate(int32(val.(wire.Date)))
	case wire.KDatetime:
		return renderDatetime(float64(val.(wire.Datetime)))
	case wire.KTimespan:
		return renderTimespan(int64(val.(wire.Timespan)))
	case wire.KMinute:
		return renderMinute(int32(val.(wire.Minute)))
	case wire.KSecond:
		return renderSecond(int32(val.(wire.Second)))
	case wire.KTime:
		return renderTime(int32(val.(wire.Time)))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func nullLiteral(k wire.Kind) string {
	switch k {
	case wire.KShort:
		return "0Nh"
	case wire.KInt:
		return "0Ni"
	case wire.KLong:
		return "0N"
	case wire.KReal:
		return "0Ne"
	case wire.KFloat:
		return "0n"
	case wire.KChar:
		return `" "`
	case wire.KSymbol:
		return "`"
	case wire.KTimestamp:
		return "0Np"
	case wire.KMonth:
		return "0Nm"
	case wire.KDate:
		return "0Nd"
	case wire.KDatetime:
		return "0Nz"
	case wire.KTimespan:
		return "0Nn"
	case wire.KMinute:
		return "0Nu"
	case wire.KSecond:
		return "0Nv"
	case wire.KTime:
		return "0Nt"
	case wire.KGUID:
		return "0Ng"
	default:
		return "0N"
	}
}

// formatFloatDecimal renders f with at least one fractional digit so
// the result always reads as a float literal rather than an int.
func formatFloatDecimal(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func renderDate(days int32) string {
	t := epoch.AddDate(0, 0, int(days))
	return t.Format("2006.01.02")
}

func renderMonth(months int32) string {
	t := epoch.AddDate(0, int(months), 0)
	return t.Format("2006.01") + "m"
}

func renderTimestamp(ns int64) string {
	t := epoch.Add(time.Duration(ns))
	return fmt.Sprintf("%sD%s.%09d", t.Format("2006.01.02"), t.Format("15:04:05"), t.Nanosecond())
}

func renderDatetime(days float64) string {
	whole := math.Floor(days)
	frac := days - whole
	t := epoch.AddDate(0, 0, int(whole)).Add(time.Duration(frac * 24 * 3600 * 1e9))
	return fmt.Sprintf("%sT%s.%03d", t.Format("2006.01.02"), t.Format("15:04:05"), t.Nanosecond()/1_000_000)
}

func renderTimespan(ns int64) string {
	days := ns / (24 * 3600 * 1_000_000_000)
	rem := ns % (24 * 3600 * 1_000_000_000)
	if rem < 0 {
		rem += 24 * 3600 * 1_000_000_000
	}
	hh := rem / 3_600_000_000_000
	rem %= 3_600_000_000_000
	mm := rem / 60_000_000_000
	rem %= 60_000_000_000
	ss := rem / 1_000_000_000
	nsec := rem % 1_000_000_000
	return fmt.Sprintf("%dD%02d:%02d:%02d.%09d", days, hh, mm, ss, nsec)
}

func renderMinute(m int32) string  { return fmt.Sprintf("%02d:%02d", m/60, m%60) }
func renderSecond(s int32) string  { return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60) }
func renderTime(ms int32) string {
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", s/3600, (s/60)%60, s%60, ms%1000)
}

func renderVector(v wire.Vector) string {
	switch v.K {
	case wire.KMixed:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = renderLiteral(e.(wire.TV))
		}
		return "(" + strings.Join(parts, ";") + ")"
	case wire.KSymbol:
		var b strings.Builder
		for _, e := range v.Elems {
			if e == nil {
				b.WriteByte('`')
				continue
			}
			b.WriteByte('`')
			b.WriteString(string(e.(wire.Symbol)))
		}
		return b.String()
	case wire.KBool:
		var b strings.Builder
		for _, e := range v.Elems {
			if e != nil && bool(e.(wire.Bool)) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('b')
		return b.String()
	case wire.KChar:
		var b strings.Builder
		b.WriteByte('"')
		for _, e := range v.Elems {
			if e == nil {
				b.WriteByte(' ')
				continue
			}
			b.WriteByte(byte(e.(wire.Char)))
		}
		b.WriteByte('"')
		return b.String()
	default:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = renderScalar(v.K, e)
		}
		return strings.Join(parts, " ")
	}
}
