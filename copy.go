package gorecord

import (
	"reflect"
)

// DeepCopy returns an independent copy of v. Wrappers use it to clone their
// state.
func DeepCopy(v any) any { return deepCopy(v) }

// deepCopy copies mappings, sequences, records and wrappers recursively.
// Scalars, pointers to other types and type references are returned as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Record:
		if t == nil {
			return t
		}
		return t.Clone()
	case Wrapper:
		return t.Clone()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopy(vv)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = deepCopy(vv)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			setCopy(out.Index(i), rv.Index(i))
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			cv := reflect.New(rv.Type().Elem()).Elem()
			setCopy(cv, iter.Value())
			out.SetMapIndex(iter.Key(), cv)
		}
		return out.Interface()
	}
	return v
}

func setCopy(dst, src reflect.Value) {
	if !src.CanInterface() {
		dst.Set(src)
		return
	}
	c := deepCopy(src.Interface())
	if c == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}
	cv := reflect.ValueOf(c)
	if cv.Type().AssignableTo(dst.Type()) {
		dst.Set(cv)
		return
	}
	dst.Set(src)
}
