package value

import (
	"fmt"
	"reflect"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/internal/num"
	js "github.com/reoring/gorecord/jsonschema"
)

// RangeOption configures a Range.
type RangeOption func(*Range)

// RangeCompat reproduces the historic bound check min <= raw <= min, which
// only accepts raw == min. Use it only to stay compatible with data written
// under that check.
func RangeCompat() RangeOption { return func(r *Range) { r.compat = true } }

// Range stores a number within [min, max].
type Range struct {
	Plain
	min, max any
	compat   bool
}

// NewRange returns a Range holding def. The default is not checked.
func NewRange(def, min, max any, opts ...RangeOption) *Range {
	r := &Range{Plain: Plain{v: def}, min: min, max: max}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Apply stores raw when it is a number within the bounds.
func (r *Range) Apply(raw any) (any, error) {
	if !num.IsNumber(raw) {
		return nil, gorecord.NewIssue(gorecord.CodeUnsupportedType, map[string]any{"expected": "number", "got": fmt.Sprintf("%T", raw)})
	}
	upper := r.max
	if r.compat {
		upper = r.min
	}
	lo, ok1 := num.Compare(r.min, raw)
	hi, ok2 := num.Compare(raw, upper)
	if !ok1 || !ok2 || lo > 0 || hi > 0 {
		return nil, gorecord.NewIssue(gorecord.CodeOutOfRange, map[string]any{"min": r.min, "max": r.max, "got": raw})
	}
	r.v = raw
	return raw, nil
}

// Bounds returns min and max.
func (r *Range) Bounds() (min, max any) { return r.min, r.max }

func (r *Range) Clone() gorecord.Wrapper {
	return &Range{Plain: Plain{v: gorecord.DeepCopy(r.v)}, min: r.min, max: r.max, compat: r.compat}
}

func (r *Range) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "number", Default: r.v}
	if f, ok := num.Float(r.min); ok {
		s.Minimum = &f
	}
	if f, ok := num.Float(r.max); ok {
		s.Maximum = &f
	}
	return s
}

// Enum accepts values from an allowed set and accumulates every accepted
// value into a list.
type Enum struct {
	Plain
	allowed []any
}

// NewEnum returns an Enum holding def.
func NewEnum(def any, allowed ...any) *Enum {
	return &Enum{Plain: Plain{v: def}, allowed: allowed}
}

// Apply appends raw to the accumulated list when it is allowed. A list of
// values, the stored form read back from a document, extends the list when
// every element is allowed. A rejected value leaves the list untouched.
func (e *Enum) Apply(raw any) (any, error) {
	vals := []any{raw}
	if items, ok := listItems(raw); ok {
		vals = items
	}
	for _, v := range vals {
		if !e.allows(v) {
			return nil, gorecord.NewIssue(gorecord.CodeOutOfRange, map[string]any{"allowed": e.allowed, "got": v})
		}
	}
	acc, _ := listItems(e.v)
	e.v = append(acc, vals...)
	return raw, nil
}

// listItems copies any slice or array (except byte strings) into a []any.
func listItems(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func (e *Enum) allows(raw any) bool {
	for _, a := range e.allowed {
		if num.Equal(a, raw) {
			return true
		}
	}
	return false
}

// Allowed returns the allowed values.
func (e *Enum) Allowed() []any { return append([]any(nil), e.allowed...) }

func (e *Enum) Clone() gorecord.Wrapper {
	return &Enum{Plain: Plain{v: gorecord.DeepCopy(e.v)}, allowed: e.allowed}
}

func (e *Enum) JSONSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: &js.Schema{Enum: e.Allowed()}}
}

var (
	_ gorecord.Holder = (*Range)(nil)
	_ gorecord.Holder = (*Enum)(nil)
)
