package gorecord

import (
	"reflect"

	js "github.com/reoring/gorecord/jsonschema"
)

// JSONSchema describes the records of s. Wrapper fields describe themselves
// when they implement jsonschema.Describer; wrappers reporting IsRequired
// are listed as required. Strict schemas disallow additional properties.
// Nested record defaults are expanded; record type requirements, which may
// refer back to s, are described by title only.
func (s *Schema) JSONSchema() *js.Schema {
	out := &js.Schema{Title: s.name, Type: "object", Properties: make(map[string]*js.Schema, len(s.fields))}
	for _, f := range s.fields {
		out.Properties[f.Name] = describeField(f.Descriptor)
		if r, ok := f.Descriptor.wrapper.(interface{ IsRequired() bool }); ok && r.IsRequired() {
			out.Required = append(out.Required, f.Name)
		}
	}
	if s.strict {
		out.AdditionalProperties = false
	}
	return out
}

func describeField(d Descriptor) *js.Schema {
	switch d.kind {
	case KindType:
		if d.typ.IsRecord() {
			return RecordRef(d.typ.Schema())
		}
		if d.typ.goType != nil {
			return &js.Schema{Type: jsonType(d.typ.goType)}
		}
		return &js.Schema{}
	case KindNested:
		if d.record != nil {
			return d.record.schema.JSONSchema()
		}
		return &js.Schema{Type: "object"}
	case KindWrapper:
		if ds, ok := d.wrapper.(js.Describer); ok {
			return ds.JSONSchema()
		}
		return &js.Schema{}
	}
	if d.literal == nil {
		return &js.Schema{}
	}
	return &js.Schema{Type: jsonType(reflect.TypeOf(d.literal)), Default: d.literal}
}

// RecordRef is the shallow description of a record type.
func RecordRef(s *Schema) *js.Schema { return &js.Schema{Title: s.name, Type: "object"} }

func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return ""
}
