package model

import "strings"

// GenerateCreateTable renders the server's table-creation DDL string:
// `` tbl:([k1:`tc1$(); k2:`tc2$()] v1:`tv1$(); ...) ``. Key fields are
// grouped inside the brackets (contiguous, first); value fields
// follow, each an empty-vector cast of its declared kind.
func GenerateCreateTable(s *SchemaDescriptor) string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(":([")
	b.WriteString(joinFieldDefs(s.KeyFields()))
	b.WriteString("] ")
	b.WriteString(joinFieldDefs(s.ValueFields()))
	b.WriteString(")")
	return b.String()
}

func joinFieldDefs(fields []Field) string {
	defs := make([]string, len(fields))
	for i, f := range fields {
		defs[i] = fieldDefinition(f)
	}
	return strings.Join(defs, "; ")
}

// fieldDefinition renders one field as an empty-vector type cast:
// "name:`c$()" for a scalar, "name:`C$()" (uppercase char) for a
// mixed-list field whose elements are of the given scalar kind, and
// "name:()" for an untyped mixed-list.
func fieldDefinition(f Field) string {
	var c byte
	if f.ElemKind != nil {
		ec, _ := charForKind(*f.ElemKind)
		c = ec - 'a' + 'A'
	} else {
		var ok bool
		if c, ok = charForKind(f.Kind); !ok {
			return f.Name + ":()"
		}
	}
	return f.Name + ":`" + string(c) + "$()"
}
