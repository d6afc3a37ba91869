package value

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/reoring/gorecord"
	js "github.com/reoring/gorecord/jsonschema"
)

// Typed is a Required whose resolved value must be falsy or an instance of
// a type. Unlike a literal field it can hold nil.
type Typed struct {
	Required
	typ gorecord.TypeRef
}

// NewTyped returns a Typed wrapper.
func NewTyped(def any, required bool, t gorecord.TypeRef) *Typed {
	return &Typed{Required: Required{Plain: Plain{v: def}, required: required}, typ: t}
}

func (t *Typed) Resolve() (any, error) {
	v, err := t.Required.Resolve()
	if err != nil {
		return nil, err
	}
	if !Falsy(v) && !t.typ.IsInstance(v) {
		return nil, gorecord.NewIssue(gorecord.CodeTypeMismatch, map[string]any{"expected": t.typ.String(), "got": fmt.Sprintf("%T", v)})
	}
	return v, nil
}

// Type returns the required type.
func (t *Typed) Type() gorecord.TypeRef { return t.typ }

func (t *Typed) Clone() gorecord.Wrapper {
	return &Typed{Required: Required{Plain: Plain{v: gorecord.DeepCopy(t.v)}, required: t.required}, typ: t.typ}
}

// ListOption configures a List.
type ListOption func(*List)

// ListDefault sets the initial elements.
func ListDefault(v any) ListOption { return func(l *List) { l.v = v } }

// ListRequired marks the list required; together with ListNeedSize an empty
// list fails to resolve.
func ListRequired() ListOption { return func(l *List) { l.required = true } }

// ListNeedSize requires at least one element when the list is required.
func ListNeedSize() ListOption { return func(l *List) { l.needSize = true } }

// ListOf requires every element to be an instance of t. For record types a
// plain mapping is also accepted when its keys fit the record schema.
func ListOf(t gorecord.TypeRef) ListOption { return func(l *List) { l.elem = t } }

// ListAllowRaw lets plain mappings bypass element validation.
func ListAllowRaw() ListOption { return func(l *List) { l.allowRaw = true } }

// List holds a sequence and validates its size and element types on
// resolve.
type List struct {
	Required
	needSize bool
	elem     gorecord.TypeRef
	allowRaw bool
}

// NewList returns a List, empty unless ListDefault is given.
func NewList(opts ...ListOption) *List {
	l := &List{}
	for _, o := range opts {
		o(l)
	}
	if Falsy(l.v) {
		l.v = []any{}
	}
	return l
}

// Resolve checks the stored value is a list, the size rule and every
// element.
func (l *List) Resolve() (any, error) {
	v := l.v
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, gorecord.NewIssue(gorecord.CodeTypeMismatch, map[string]any{"expected": "list", "got": fmt.Sprintf("%T", v)})
	}
	if l.required && l.needSize && rv.Len() == 0 {
		return nil, gorecord.NewIssue(gorecord.CodeRequiredValue, map[string]any{"reason": "empty list"})
	}
	if l.elem.IsZero() {
		return v, nil
	}
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i).Interface()
		if l.elem.IsInstance(e) {
			continue
		}
		if m, ok := e.(map[string]any); ok && l.elem.IsRecord() {
			if l.allowRaw || fitsSchema(m, l.elem.Schema()) {
				continue
			}
		}
		iss := gorecord.NewIssue(gorecord.CodeTypeMismatch, map[string]any{"expected": l.elem.String(), "index": i})
		iss[0].Path = fmt.Sprintf("/%d", i)
		return nil, iss
	}
	return v, nil
}

// fitsSchema checks a raw mapping against a record schema: a strict schema
// needs exactly its keys, a permissive one at least its keys. Mappings
// missing keys are rejected even when the missing fields have defaults.
func fitsSchema(m map[string]any, s *gorecord.Schema) bool {
	want := s.Keys()
	if s.IsStrict() {
		if len(m) != len(want) {
			return false
		}
		got := make([]string, 0, len(m))
		for k := range m {
			got = append(got, k)
		}
		sort.Strings(got)
		sort.Strings(want)
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}
	for _, k := range want {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

func (l *List) Clone() gorecord.Wrapper {
	return &List{
		Required: Required{Plain: Plain{v: gorecord.DeepCopy(l.v)}, required: l.required},
		needSize: l.needSize,
		elem:     l.elem,
		allowRaw: l.allowRaw,
	}
}

func (l *List) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "array"}
	if l.required && l.needSize {
		n := 1
		s.MinItems = &n
	}
	if rs := l.elem.Schema(); rs != nil {
		s.Items = gorecord.RecordRef(rs)
	}
	return s
}

var (
	_ gorecord.Holder = (*Typed)(nil)
	_ gorecord.Holder = (*List)(nil)
)
