// Package num holds the numeric helpers shared by wrappers and the compare
// walker: Go has no single number type, so values from literals, documents
// and decoded JSON (json.Number) are normalized here.
package num

import (
	"math"
	"reflect"
)

type floater interface{ Float64() (float64, error) }

// Float converts any Go numeric value or json.Number-like value to float64.
func Float(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if f, ok := v.(floater); ok {
		x, err := f.Float64()
		return x, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// IsNumber reports whether v is a Go numeric value or a json.Number-like value.
func IsNumber(v any) bool {
	_, ok := Float(v)
	return ok
}

// Equal compares a and b by numeric value when both are numbers, and by Go
// equality otherwise. Integers of the same signedness compare exactly.
func Equal(a, b any) bool {
	if IsNumber(a) && IsNumber(b) {
		ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
		switch {
		case isInt(ra) && isInt(rb):
			return ra.Int() == rb.Int()
		case isUint(ra) && isUint(rb):
			return ra.Uint() == rb.Uint()
		}
		fa, _ := Float(a)
		fb, _ := Float(b)
		return fa == fb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta == reflect.TypeOf(b) && ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Compare orders two numbers: -1 when a < b, 0 when equal, 1 when a > b.
// ok is false when either side is not a number or is NaN.
func Compare(a, b any) (int, bool) {
	fa, ok1 := Float(a)
	fb, ok2 := Float(b)
	if !ok1 || !ok2 || math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, false
	}
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	}
	return 0, true
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}
