package model

import (
	"errors"
	"fmt"
)

var (
	errIndexOutOfRange = errors.New("model: meta column index out of range")
	errNotASymbol      = errors.New("model: expected a symbol element")
	errNotAChar        = errors.New("model: expected a char element")
)

func errMissingMetaColumn(name string) error {
	return fmt.Errorf("model: meta table has no %q column", name)
}

func errUnknownTypeChar(c byte) error {
	return fmt.Errorf("model: unknown type character %q", string(c))
}
