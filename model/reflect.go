package model

import (
	"qgo/errs"
	"qgo/wire"
)

// ReflectFromMeta builds a SchemaDescriptor from the server's `meta`
// table (columns c/t/f/a: column name, type character, foreign-key
// hint, attribute) and the result of `keys <name>` (empty means
// unkeyed). Lowercase type characters are scalar kinds; an uppercase
// counterpart is a mixed-list of that scalar kind, and an uppercase
// letter with no known lowercase counterpart is an untyped mixed-list.
func ReflectFromMeta(tableName string, meta wire.Table, keyCols []string) (*SchemaDescriptor, error) {
	cCol, ok := meta.ColumnByName("c")
	if !ok {
		return nil, &errs.ReflectionError{Table: tableName, Err: errMissingMetaColumn("c")}
	}
	tCol, ok := meta.ColumnByName("t")
	if !ok {
		return nil, &errs.ReflectionError{Table: tableName, Err: errMissingMetaColumn("t")}
	}
	var aCol wire.Column
	hasAttr := false
	if c, ok := meta.ColumnByName("a"); ok {
		aCol, hasAttr = c, true
	}

	keySet := make(map[string]bool, len(keyCols))
	for _, k := range keyCols {
		keySet[k] = true
	}

	n := cCol.Data.Len()
	fields := make([]Field, 0, n)
	for i := 0; i < n; i++ {
		name, err := symbolAt(cCol.Data, i)
		if err != nil {
			return nil, &errs.ReflectionError{Table: tableName, Err: err}
		}
		typeChar, err := charAt(tCol.Data, i)
		if err != nil {
			return nil, &errs.ReflectionError{Table: tableName, Err: err}
		}

		var f Field
		if isUpper(typeChar) {
			if elem, ok := kindForChar(toLower(typeChar)); ok {
				f = MixedOf(name, elem)
			} else {
				f = Field{Name: name, Kind: wire.KMixed}
			}
		} else {
			kind, ok := kindForChar(typeChar)
			if !ok {
				return nil, &errs.ReflectionError{Table: tableName, Err: errUnknownTypeChar(typeChar)}
			}
			f = Scalar(name, kind)
		}
		f.PrimaryKey = keySet[name]

		if hasAttr {
			if attr, err := attrAt(aCol.Data, i); err == nil {
				f.Attr = attr
			}
		}
		fields = append(fields, f)
	}

	s, err := New(tableName, fields...)
	if err != nil {
		return nil, &errs.ReflectionError{Table: tableName, Err: err}
	}
	return s, nil
}

func symbolAt(v wire.Vector, i int) (string, error) {
	if i >= len(v.Elems) {
		return "", errIndexOutOfRange
	}
	sym, ok := v.Elems[i].(wire.Symbol)
	if !ok {
		return "", errNotASymbol
	}
	return string(sym), nil
}

func charAt(v wire.Vector, i int) (byte, error) {
	if i >= len(v.Elems) {
		return 0, errIndexOutOfRange
	}
	c, ok := v.Elems[i].(wire.Char)
	if !ok {
		return 0, errNotAChar
	}
	return byte(c), nil
}

func attrAt(v wire.Vector, i int) (wire.Attr, error) {
	c, err := charAt(v, i)
	if err != nil {
		return wire.AttrNone, err
	}
	switch c {
	case 's':
		return wire.AttrSorted, nil
	case 'u':
		return wire.AttrUnique, nil
	case 'p':
		return wire.AttrParted, nil
	case 'g':
		return wire.AttrGrouped, nil
	default:
		return wire.AttrNone, nil
	}
}
