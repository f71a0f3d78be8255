package model

import (
	"errors"

	"qgo/errs"
	"qgo/wire"
)

// SchemaDescriptor is the runtime value standing in for a nominal
// model type — Go has no runtime class creation, so reflected and
// declared models alike are expressed as values of this one type. It
// satisfies query.Model (TableName/FieldNames) so the query builder
// can bind directly against it, and it is what reflection constructs
// and the registry stores.
type SchemaDescriptor struct {
	Name   string
	Fields []Field
}

// New builds a SchemaDescriptor and validates it.
func New(name string, fields ...Field) (*SchemaDescriptor, error) {
	s := &SchemaDescriptor{Name: name, Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// TableName satisfies query.Model.
func (s *SchemaDescriptor) TableName() string { return s.Name }

// FieldNames satisfies query.Model: declared field order, which is
// also the column order in DDL key/value groups and in insert
// serialization.
func (s *SchemaDescriptor) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// KeyFields returns the primary-key fields in declared order.
func (s *SchemaDescriptor) KeyFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.PrimaryKey {
			out = append(out, f)
		}
	}
	return out
}

// ValueFields returns the non-key fields in declared order.
func (s *SchemaDescriptor) ValueFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if !f.PrimaryKey {
			out = append(out, f)
		}
	}
	return out
}

// IsKeyed reports whether the model has at least one primary-key
// field.
func (s *SchemaDescriptor) IsKeyed() bool { return len(s.KeyFields()) > 0 }

// FieldByName looks up a declared field.
func (s *SchemaDescriptor) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks the model-level invariants: unique field names, and
// every mixed-list field naming a known element kind.
func (s *SchemaDescriptor) Validate() error {
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if seen[f.Name] {
			return &errs.ModelError{Model: s.Name, Err: errors.New("duplicate field name: " + f.Name)}
		}
		seen[f.Name] = true
		if f.Kind == wire.KMixed {
			// nil ElemKind is an untyped mixed-list, which is valid
			// (transient schemas synthesized from raw results use it).
			if f.ElemKind != nil {
				if _, ok := charForKind(*f.ElemKind); !ok {
					return &errs.ModelError{Model: s.Name, Err: errors.New("unknown mixed-list element kind for field " + f.Name)}
				}
			}
		} else if f.ElemKind == nil {
			if _, ok := charForKind(f.Kind); !ok {
				return &errs.ModelError{Model: s.Name, Err: errors.New("unknown scalar kind for field " + f.Name)}
			}
		}
	}
	return nil
}
