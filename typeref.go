package gorecord

import (
	"reflect"
)

// TypeRef is a type requirement: either a Go type or a record type (a Schema).
// A TypeRef is a declaration, never a value; one that is still stored in a
// field when the record is checked or exported is reported as a schema
// conflict.
type TypeRef struct {
	goType reflect.Type
	schema *Schema
}

// TypeOf returns the requirement "value is a T". Interface types accept any
// implementation.
func TypeOf[T any]() TypeRef { return TypeRef{goType: reflect.TypeOf((*T)(nil)).Elem()} }

// TypeFor wraps an existing reflect.Type.
func TypeFor(rt reflect.Type) TypeRef { return TypeRef{goType: rt} }

// RecordOf returns the requirement "value is a record of schema s (or of a
// schema inheriting from s)".
func RecordOf(s *Schema) TypeRef { return TypeRef{schema: s} }

// IsZero reports whether the reference names no type at all.
func (t TypeRef) IsZero() bool { return t.goType == nil && t.schema == nil }

// IsRecord reports whether the reference names a record type.
func (t TypeRef) IsRecord() bool { return t.schema != nil }

// Schema returns the referenced record schema, or nil for Go types.
func (t TypeRef) Schema() *Schema { return t.schema }

// IsInstance reports whether v satisfies the requirement.
func (t TypeRef) IsInstance(v any) bool {
	if t.schema != nil {
		r, ok := v.(*Record)
		return ok && r != nil && r.schema.Is(t.schema)
	}
	if v == nil || t.goType == nil {
		return false
	}
	return reflect.TypeOf(v).AssignableTo(t.goType)
}

func (t TypeRef) String() string {
	switch {
	case t.schema != nil:
		return "record " + t.schema.Name()
	case t.goType != nil:
		return t.goType.String()
	}
	return "<none>"
}

// isTypeReference reports whether v is a type declaration rather than data.
func isTypeReference(v any) bool {
	switch v.(type) {
	case TypeRef, *TypeRef, reflect.Type, *Schema:
		return true
	}
	return false
}
