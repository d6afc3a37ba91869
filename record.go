package gorecord

import (
	"reflect"
	"sort"
)

// Record is one schema-shaped value container: a mapping from field name to
// current value. Records are not safe for concurrent mutation; read-only use
// (Check, ToPlainTree, Equals) after construction may be shared.
type Record struct {
	schema  *Schema
	surface reflect.Type
	keys    []string
	fields  map[string]any
}

// Option configures record construction.
type Option func(*Record)

// AsVariant makes the record check field names against the method set of
// variant's type instead of *Record. Types embedding a record pass a nil
// pointer of themselves, e.g. AsVariant((*Document)(nil)).
func AsVariant(variant any) Option {
	return func(r *Record) {
		if variant != nil {
			r.surface = reflect.TypeOf(variant)
		}
	}
}

// New constructs a record: the schema keys are checked against reserved
// names, the descriptors are deep-copied into the field mapping, the PreNew
// hook runs, and overrides are assigned in key order.
func New(s *Schema, overrides map[string]any, opts ...Option) (*Record, error) {
	r := &Record{schema: s, surface: recordSurface}
	for _, o := range opts {
		o(r)
	}
	if err := checkSchemaKeys(r.surface, s); err != nil {
		return nil, err
	}
	fields := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		fields[f.Name] = f.Descriptor.initial()
	}
	if s.preNew != nil {
		fields = s.preNew(fields)
	}
	r.fields = make(map[string]any, len(fields))
	for _, f := range s.fields {
		if v, ok := fields[f.Name]; ok {
			r.put(f.Name, v)
		}
	}
	for _, k := range sortedKeys(fields) {
		if !s.Has(k) {
			r.put(k, fields[k])
		}
	}
	for _, k := range sortedKeys(overrides) {
		if err := r.Set(k, overrides[k]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(s *Schema, overrides map[string]any, opts ...Option) *Record {
	r, err := New(s, overrides, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Keys returns the field names: declared fields first, then dynamic fields in
// insertion order.
func (r *Record) Keys() []string { return append([]string(nil), r.keys...) }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.keys) }

// Get returns the stored value of a field. Wrapper fields return the wrapper.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Resolve returns the effective value of a field, resolving wrappers.
func (r *Record) Resolve(name string) (any, error) {
	v, ok := r.fields[name]
	if !ok {
		return nil, nil
	}
	if w, ok := v.(Wrapper); ok {
		res, err := w.Resolve()
		if err != nil {
			return nil, rebase(RootPath().Field(name), err, CodeTypeMismatch)
		}
		return res, nil
	}
	return v, nil
}

// Set assigns raw to a field through the dispatch rules.
func (r *Record) Set(name string, raw any) error { return r.assign(name, raw) }

// Update assigns every entry of a mapping through the dispatch rules, in key
// order. Values that are not string-keyed mappings are ignored.
func (r *Record) Update(m any) error {
	src, ok := asStringMap(m)
	if !ok {
		return nil
	}
	for _, k := range sortedKeys(src) {
		if err := r.assign(k, src[k]); err != nil {
			return err
		}
	}
	return nil
}

// ForceUpdate writes the entries of a mapping straight into the field mapping
// without dispatch or validation. Use it for trusted population only.
func (r *Record) ForceUpdate(m any) *Record {
	src, ok := asStringMap(m)
	if !ok {
		return r
	}
	for _, k := range sortedKeys(src) {
		r.put(k, src[k])
	}
	return r
}

// Clone returns a deep copy of the record. Nested records and wrappers are
// copied too.
func (r *Record) Clone() *Record {
	c := &Record{schema: r.schema, surface: r.surface, keys: append([]string(nil), r.keys...), fields: make(map[string]any, len(r.fields))}
	for k, v := range r.fields {
		c.fields[k] = deepCopy(v)
	}
	return c
}

func (r *Record) put(name string, v any) {
	if _, ok := r.fields[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.fields[name] = v
}

func (r *Record) String() string { return "record " + r.schema.name }

// asStringMap accepts map[string]any and any other string-keyed map.
func asStringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
