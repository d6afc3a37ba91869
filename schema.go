package gorecord

import (
	"fmt"
	"reflect"
)

// Field is one declared field of a schema.
type Field struct {
	Name       string
	Descriptor Descriptor
}

// Schema is the declaration of a record type: an ordered mapping from field
// name to descriptor plus the record flavor (strict or permissive).
// Schemas are immutable once built and may be shared freely.
type Schema struct {
	name            string
	fields          []Field
	index           map[string]int
	strict          bool
	ignore          map[string]struct{}
	preNew          func(map[string]any) map[string]any
	rejectUnmatched bool
	parent          *Schema
}

// SchemaBuilder declares a schema field by field.
type SchemaBuilder struct {
	s   *Schema
	err error
}

// Define starts a permissive schema with the given record type name.
func Define(name string) *SchemaBuilder {
	return &SchemaBuilder{s: &Schema{name: name, index: map[string]int{}, ignore: map[string]struct{}{}}}
}

// Inherit copies the fields and flavor of parent. Records of the new schema
// are instances of parent's record type. Call it before Field to let later
// declarations override inherited ones.
func (b *SchemaBuilder) Inherit(parent *Schema) *SchemaBuilder {
	if parent == nil {
		return b
	}
	for _, f := range parent.fields {
		b.Field(f.Name, f.Descriptor)
	}
	for k := range parent.ignore {
		b.s.ignore[k] = struct{}{}
	}
	b.s.strict = parent.strict
	b.s.preNew = parent.preNew
	b.s.rejectUnmatched = parent.rejectUnmatched
	b.s.parent = parent
	return b
}

// Field declares (or redeclares) a field. Literal prototypes are deep-copied
// into each record, so pointer literals are rejected; declare such fields
// with a type requirement or a wrapper instead.
func (b *SchemaBuilder) Field(name string, d Descriptor) *SchemaBuilder {
	if name == "" {
		b.err = fmt.Errorf("gorecord: schema %s: empty field name", b.s.name)
		return b
	}
	if d.kind == KindLiteral && d.literal != nil && reflect.TypeOf(d.literal).Kind() == reflect.Pointer {
		b.err = fmt.Errorf("gorecord: schema %s: field %s: pointer literal %T would be shared by every record", b.s.name, name, d.literal)
		return b
	}
	if i, ok := b.s.index[name]; ok {
		b.s.fields[i].Descriptor = d
		return b
	}
	b.s.index[name] = len(b.s.fields)
	b.s.fields = append(b.s.fields, Field{Name: name, Descriptor: d})
	return b
}

// Value declares a field from an example value, classified by Describe.
func (b *SchemaBuilder) Value(name string, v any) *SchemaBuilder { return b.Field(name, Describe(v)) }

// Strict rejects assignments to fields that are not declared.
func (b *SchemaBuilder) Strict() *SchemaBuilder { b.s.strict = true; return b }

// Permissive accepts undeclared fields and stores them without coercion (default).
func (b *SchemaBuilder) Permissive() *SchemaBuilder { b.s.strict = false; return b }

// IgnoreOnEquals excludes keys from Equals comparisons.
func (b *SchemaBuilder) IgnoreOnEquals(keys ...string) *SchemaBuilder {
	for _, k := range keys {
		b.s.ignore[k] = struct{}{}
	}
	return b
}

// PreNew installs a hook that receives the copied field mapping before
// overrides are applied. The returned mapping becomes the record state.
func (b *SchemaBuilder) PreNew(fn func(map[string]any) map[string]any) *SchemaBuilder {
	b.s.preNew = fn
	return b
}

// RejectUnmatched makes assignments that match no dispatch rule fail with a
// type mismatch instead of being dropped.
func (b *SchemaBuilder) RejectUnmatched() *SchemaBuilder { b.s.rejectUnmatched = true; return b }

// Schema returns the schema under construction, for type requirements that
// refer to the record being declared or to one declared later. It must not
// be used to construct records before Build.
func (b *SchemaBuilder) Schema() *Schema { return b.s }

// Build returns the schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.s.name == "" {
		return nil, fmt.Errorf("gorecord: schema name is required")
	}
	return b.s, nil
}

// MustBuild is like Build but panics on error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record type name.
func (s *Schema) Name() string { return s.name }

// IsStrict reports whether undeclared fields are rejected.
func (s *Schema) IsStrict() bool { return s.strict }

// Parent returns the inherited schema, if any.
func (s *Schema) Parent() *Schema { return s.parent }

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// Keys returns the declared field names in declaration order.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Descriptor returns the descriptor of a declared field.
func (s *Schema) Descriptor(name string) (Descriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return s.fields[i].Descriptor, true
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Ignored reports whether key is excluded from Equals.
func (s *Schema) Ignored(key string) bool {
	_, ok := s.ignore[key]
	return ok
}

// Is reports whether s is other or inherits from it.
func (s *Schema) Is(other *Schema) bool {
	for c := s; c != nil; c = c.parent {
		if c == other {
			return true
		}
	}
	return false
}

func (s *Schema) String() string { return "schema " + s.name }
