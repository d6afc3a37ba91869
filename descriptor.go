package gorecord

import (
	"reflect"
)

// Kind enumerates descriptor kinds.
type Kind int

const (
	KindLiteral Kind = iota // Example value; its Go type is the required type.
	KindType                // Type requirement; values must be instances.
	KindNested              // Nested record marker or nested record default.
	KindWrapper             // Constrained value owning its own coercion.
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindType:
		return "type"
	case KindNested:
		return "nested"
	case KindWrapper:
		return "wrapper"
	}
	return "unknown"
}

// Descriptor declares the default shape and constraint of one field.
type Descriptor struct {
	kind    Kind
	literal any
	typ     TypeRef
	record  *Record
	wrapper Wrapper
}

// Literal declares a field by example. Literal(nil) declares an untyped field
// that accepts any value. Mappings and slices are copied into every record;
// pointers inside them are shared. A pointer literal fails at Build.
func Literal(v any) Descriptor { return Descriptor{kind: KindLiteral, literal: v} }

// Type declares a type requirement. The field holds t itself until a value
// is assigned.
func Type(t TypeRef) Descriptor { return Descriptor{kind: KindType, typ: t} }

// Nested declares a field that holds another record. Its default is an empty
// mapping.
func Nested() Descriptor { return Descriptor{kind: KindNested} }

// NestedRecord declares a nested record field whose default is a record of
// schema s built from overrides. It panics when the default cannot be built.
func NestedRecord(s *Schema, overrides map[string]any) Descriptor {
	return Descriptor{kind: KindNested, record: MustNew(s, overrides)}
}

// Wrap declares a field owned by a Wrapper.
func Wrap(w Wrapper) Descriptor { return Descriptor{kind: KindWrapper, wrapper: w} }

// Describe classifies v by shape: wrappers, type references, records and
// empty mappings map to their kinds, anything else is a literal.
func Describe(v any) Descriptor {
	switch t := v.(type) {
	case Descriptor:
		return t
	case Wrapper:
		return Wrap(t)
	case TypeRef:
		return Type(t)
	case *Schema:
		return Type(RecordOf(t))
	case reflect.Type:
		return Type(TypeFor(t))
	case *Record:
		return Descriptor{kind: KindNested, record: t.Clone()}
	case map[string]any:
		if len(t) == 0 {
			return Nested()
		}
	}
	return Literal(v)
}

// Kind returns the descriptor kind.
func (d Descriptor) Kind() Kind { return d.kind }

// TypeRef returns the requirement of a KindType descriptor.
func (d Descriptor) TypeRef() TypeRef { return d.typ }

// Wrapper returns the wrapper of a KindWrapper descriptor.
func (d Descriptor) Wrapper() Wrapper { return d.wrapper }

// Record returns the default record of a KindNested descriptor, if any.
func (d Descriptor) Record() *Record { return d.record }

// LiteralValue returns the example value of a KindLiteral descriptor.
func (d Descriptor) LiteralValue() any { return d.literal }

// untyped reports whether the descriptor places no constraint on the field.
func (d Descriptor) untyped() bool { return d.kind == KindLiteral && d.literal == nil }

// initial returns a fresh copy of the default value, never shared with the
// schema or other records.
func (d Descriptor) initial() any {
	switch d.kind {
	case KindType:
		return d.typ
	case KindNested:
		if d.record != nil {
			return d.record.Clone()
		}
		return map[string]any{}
	case KindWrapper:
		return d.wrapper.Clone()
	}
	return deepCopy(d.literal)
}

// sameType reports whether raw has exactly the runtime type of the
// descriptor's own value.
func (d Descriptor) sameType(raw any) bool {
	switch d.kind {
	case KindType:
		_, ok := raw.(TypeRef)
		return ok
	case KindNested:
		if d.record != nil {
			r, ok := raw.(*Record)
			return ok && r != nil && r.schema == d.record.schema
		}
		_, ok := raw.(map[string]any)
		return ok
	case KindWrapper:
		return raw != nil && reflect.TypeOf(raw) == reflect.TypeOf(d.wrapper)
	}
	return raw != nil && reflect.TypeOf(raw) == reflect.TypeOf(d.literal)
}
