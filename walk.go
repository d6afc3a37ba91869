package gorecord

import (
	"fmt"
	"reflect"
	"sort"
)

// visitor is the terminal operation of a tree walk. C is per-node context
// passed down by the caller (the compare target), R the per-node result.
// Implementations recurse by calling walk on children.
type visitor[C, R any] interface {
	onRecord(p PathRef, r *Record, c C) (R, error)
	onSequence(p PathRef, v reflect.Value, c C) (R, error)
	onMapping(p PathRef, v reflect.Value, c C) (R, error)
	onWrapper(p PathRef, w Wrapper, c C) (R, error)
	onScalar(p PathRef, v any, c C) (R, error)
}

// walk classifies node and hands it to vis. Type references are declarations
// leaking into data and always fail.
func walk[C, R any](vis visitor[C, R], p PathRef, node any, c C) (R, error) {
	var zero R
	if isTypeReference(node) {
		return zero, Issues{p.Issue(CodeSchemaConflict, map[string]any{"value": fmt.Sprint(node)})}
	}
	switch n := node.(type) {
	case nil:
		return vis.onScalar(p, nil, c)
	case *Record:
		if n == nil {
			return vis.onScalar(p, nil, c)
		}
		return vis.onRecord(p, n, c)
	case Wrapper:
		return vis.onWrapper(p, n, c)
	}
	rv := reflect.ValueOf(node)
	switch {
	case isSequence(rv):
		return vis.onSequence(p, rv, c)
	case isMapping(rv):
		return vis.onMapping(p, rv, c)
	}
	return vis.onScalar(p, node, c)
}

// isSequence treats slices and arrays as sequences, except byte strings.
func isSequence(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func isMapping(rv reflect.Value) bool {
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// isContainer reports whether v is walked as something other than a scalar.
func isContainer(v any) bool {
	switch v.(type) {
	case nil:
		return false
	case *Record, Wrapper:
		return true
	}
	rv := reflect.ValueOf(v)
	return isSequence(rv) || isMapping(rv)
}

// mapKeys returns the keys of a string-keyed map value in sorted order.
func mapKeys(rv reflect.Value) []string {
	ks := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		ks = append(ks, k.String())
	}
	sort.Strings(ks)
	return ks
}

func mapIndex(rv reflect.Value, k string) any {
	v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}
