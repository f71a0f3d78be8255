package model

import "qgo/wire"

// charForKind / kindForChar map each kind to its server type
// character, used both ways: DDL generation renders a field's kind
// as its type character, and reflection parses the server's meta `t`
// column back into a Kind.
var kindChars = map[wire.Kind]byte{
	wire.KBool:      'b',
	wire.KGUID:      'g',
	wire.KByte:      'x',
	wire.KShort:     'h',
	wire.KInt:       'i',
	wire.KLong:      'j',
	wire.KReal:      'e',
	wire.KFloat:     'f',
	wire.KChar:      'c',
	wire.KSymbol:    's',
	wire.KTimestamp: 'p',
	wire.KMonth:     'm',
	wire.KDate:      'd',
	wire.KDatetime:  'z',
	wire.KTimespan:  'n',
	wire.KMinute:    'u',
	wire.KSecond:    'v',
	wire.KTime:      't',
}

var charKinds = func() map[byte]wire.Kind {
	m := make(map[byte]wire.Kind, len(kindChars))
	for k, c := range kindChars {
		m[c] = k
	}
	return m
}()

func charForKind(k wire.Kind) (byte, bool) {
	c, ok := kindChars[k]
	return c, ok
}

func kindForChar(c byte) (wire.Kind, bool) {
	k, ok := charKinds[c]
	return k, ok
}

// isUpper/toLower avoid pulling in unicode/strings for a single ASCII
// letter check — reflection's type characters are always ASCII.
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func toLower(c byte) byte {
	if isUpper(c) {
		return c - 'A' + 'a'
	}
	return c
}
