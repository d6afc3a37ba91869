package value

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/internal/num"
)

// Falsy reports whether v counts as unset: nil, false, zero numbers, empty
// strings, empty collections and the zero time. Wrappers are judged by their
// resolved value.
func Falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case time.Time:
		return t.IsZero()
	case *gorecord.Record:
		return t == nil
	case gorecord.Wrapper:
		rv, err := t.Resolve()
		return err != nil || Falsy(rv)
	}
	if f, ok := num.Float(v); ok {
		return f == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func resolved(v any) (any, error) {
	if w, ok := v.(gorecord.Wrapper); ok {
		return w.Resolve()
	}
	return v, nil
}

func unsupported(op string, a, b any) error {
	return gorecord.NewIssue(gorecord.CodeTypeMismatch, map[string]any{"op": op, "left": fmt.Sprintf("%T", a), "right": fmt.Sprintf("%T", b)})
}

// Equal compares the resolved value of w with other (resolved too when it is
// a wrapper). Numbers compare by value.
func Equal(w gorecord.Wrapper, other any) (bool, error) {
	a, err := w.Resolve()
	if err != nil {
		return false, err
	}
	b, err := resolved(other)
	if err != nil {
		return false, err
	}
	return num.Equal(a, b), nil
}

// Compare orders the resolved value of w against other: numbers, strings and
// times are supported.
func Compare(w gorecord.Wrapper, other any) (int, error) {
	a, err := w.Resolve()
	if err != nil {
		return 0, err
	}
	b, err := resolved(other)
	if err != nil {
		return 0, err
	}
	if c, ok := num.Compare(a, b); ok {
		return c, nil
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	}
	return 0, unsupported("compare", a, b)
}

// Truthy is the negation of Falsy on the resolved value.
func Truthy(w gorecord.Wrapper) (bool, error) {
	v, err := w.Resolve()
	if err != nil {
		return false, err
	}
	return !Falsy(v), nil
}

// Len returns the length of the resolved value (string, slice, array or map).
func Len(w gorecord.Wrapper) (int, error) {
	v, err := w.Resolve()
	if err != nil {
		return 0, err
	}
	if r, ok := v.(*gorecord.Record); ok && r != nil {
		return r.Len(), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	}
	return 0, unsupported("len", v, nil)
}

// Add returns resolved(w) + other: numeric addition (int when both sides are
// integers), string concatenation, list concatenation or time plus duration.
func Add(w gorecord.Wrapper, other any) (any, error) {
	a, err := w.Resolve()
	if err != nil {
		return nil, err
	}
	b, err := resolved(other)
	if err != nil {
		return nil, err
	}
	if num.IsNumber(a) && num.IsNumber(b) {
		ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
		if isIntKind(ra.Kind()) && isIntKind(rb.Kind()) {
			return int(ra.Int() + rb.Int()), nil
		}
		fa, _ := num.Float(a)
		fb, _ := num.Float(b)
		return fa + fb, nil
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return x + y, nil
		}
	case time.Time:
		if d, ok := b.(time.Duration); ok {
			return x.Add(d), nil
		}
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Slice && rb.Kind() == reflect.Slice {
		out := make([]any, 0, ra.Len()+rb.Len())
		for i := 0; i < ra.Len(); i++ {
			out = append(out, ra.Index(i).Interface())
		}
		for i := 0; i < rb.Len(); i++ {
			out = append(out, rb.Index(i).Interface())
		}
		return out, nil
	}
	return nil, unsupported("add", a, b)
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
