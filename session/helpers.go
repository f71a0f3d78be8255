package session

import (
	"errors"

	"qgo/errs"
	"qgo/wire"
)

// charVectorTV wraps a Go string as the char-vector TV the server's
// expression slots expect: a UTF-8 byte sequence of char elements.
func charVectorTV(s string) wire.TV {
	elems := make([]any, len(s))
	for i := 0; i < len(s); i++ {
		elems[i] = wire.Char(s[i])
	}
	return wire.Vector{K: wire.KChar, Elems: elems}
}

// symbolValue wraps a Go string as a symbol scalar TV.
func symbolValue(s string) wire.Value {
	return wire.Value{K: wire.KSymbol, Val: wire.Symbol(s)}
}

// callForm builds the request TV for Raw/Call: a bare char-vector of
// expr when there are no arguments, or the mixed-list call form
// `(expr;arg1;arg2;...)` when there are.
func callForm(expr string, args ...wire.TV) wire.TV {
	if len(args) == 0 {
		return charVectorTV(expr)
	}
	elems := make([]any, 0, len(args)+1)
	elems = append(elems, charVectorTV(expr))
	elems = append(elems, toAnySlice(args)...)
	return wire.Vector{K: wire.KMixed, Elems: elems}
}

func toAnySlice(args []wire.TV) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

// symbolsOf extracts a []string from a symbol-vector reply TV.
func symbolsOf(tv wire.TV) ([]string, error) {
	v, ok := tv.(wire.Vector)
	if !ok {
		if _, isValue := tv.(wire.Value); isValue {
			return nil, nil
		}
		return nil, &errs.DeserializationError{Kind: "symbol-vector", Err: errors.New("reply is not a vector")}
	}
	out := make([]string, 0, len(v.Elems))
	for _, e := range v.Elems {
		sym, ok := e.(wire.Symbol)
		if !ok {
			return nil, &errs.DeserializationError{Kind: "symbol-vector", Err: errors.New("element is not a symbol")}
		}
		out = append(out, string(sym))
	}
	return out, nil
}

func errNotATable(op string) error {
	return errors.New(op + " reply is not a table")
}
