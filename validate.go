package gorecord

import (
	"reflect"
)

type validator struct{}

func (v validator) onRecord(p PathRef, r *Record, _ struct{}) (struct{}, error) {
	for _, k := range r.keys {
		if err := r.checkRaw(p.Field(k), k); err != nil {
			return struct{}{}, err
		}
		if _, err := walk[struct{}, struct{}](v, p.Field(k), r.fields[k], struct{}{}); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (v validator) onSequence(p PathRef, rv reflect.Value, _ struct{}) (struct{}, error) {
	for i := 0; i < rv.Len(); i++ {
		if _, err := walk[struct{}, struct{}](v, p.Index(i), rv.Index(i).Interface(), struct{}{}); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (v validator) onMapping(p PathRef, rv reflect.Value, _ struct{}) (struct{}, error) {
	for _, k := range mapKeys(rv) {
		if _, err := walk[struct{}, struct{}](v, p.Field(k), mapIndex(rv, k), struct{}{}); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (validator) onWrapper(p PathRef, w Wrapper, _ struct{}) (struct{}, error) {
	if _, err := w.Resolve(); err != nil {
		return struct{}{}, rebase(p, err, CodeTypeMismatch)
	}
	return struct{}{}, nil
}

func (validator) onScalar(PathRef, any, struct{}) (struct{}, error) { return struct{}{}, nil }

// checkRaw validates a raw value stored in place of a declared Holder
// wrapper, as left by LoadFrom or ForceUpdate, by applying it to a copy of
// the declared wrapper and resolving the copy.
func (r *Record) checkRaw(p PathRef, name string) error {
	d, ok := r.schema.Descriptor(name)
	if !ok || d.kind != KindWrapper {
		return nil
	}
	if _, ok := d.wrapper.(Holder); !ok {
		return nil
	}
	raw := r.fields[name]
	if _, ok := raw.(Wrapper); ok {
		return nil
	}
	w := d.wrapper.Clone()
	if _, err := w.Apply(raw); err != nil {
		return rebase(p, err, CodeTypeMismatch)
	}
	if _, err := w.Resolve(); err != nil {
		return rebase(p, err, CodeTypeMismatch)
	}
	return nil
}

// Check validates the record recursively: every wrapper in the tree is
// resolved, raw values in wrapper fields are applied to the declared wrapper,
// and the first failure is returned with its path. A type reference
// still stored as a value is a schema conflict.
func (r *Record) Check() error {
	_, err := walk[struct{}, struct{}](validator{}, RootPath(), r, struct{}{})
	return err
}

// Check validates any tree (records, sequences, mappings, wrappers).
func Check(node any) error {
	_, err := walk[struct{}, struct{}](validator{}, RootPath(), node, struct{}{})
	return err
}
