package value

import (
	"fmt"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/internal/num"
	js "github.com/reoring/gorecord/jsonschema"
)

// TimeOption configures Timestamp and Epoch wrappers.
type TimeOption func(*timeValue)

// WithClock replaces time.Now as the source of the default time.
func WithClock(now func() time.Time) TimeOption {
	return func(t *timeValue) {
		if now != nil {
			t.now = now
		}
	}
}

// InLocation sets the location used to parse strings without a zone
// (default time.Local).
func InLocation(loc *time.Location) TimeOption {
	return func(t *timeValue) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// timeValue is the state shared by Timestamp and Epoch. The layout is
// either a Go reference layout ("2006-01-02") or a strftime format
// ("%Y-%m-%d") when it contains '%'.
type timeValue struct {
	Required
	layout string
	loc    *time.Location
	now    func() time.Time
}

func newTimeValue(layout string, def any, required bool, opts []TimeOption) timeValue {
	t := timeValue{Required: Required{Plain: Plain{v: def}, required: required}, layout: layout, loc: time.Local, now: time.Now}
	for _, o := range opts {
		o(&t)
	}
	return t
}

// apply accepts a time.Time or a string in the layout.
func (t *timeValue) apply(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		t.v = v
		return v, nil
	case string:
		tm, err := t.parse(v)
		if err != nil {
			iss := gorecord.NewIssue(gorecord.CodeUnsupportedType, map[string]any{"layout": t.layout, "got": v})
			iss[0].Cause = err
			return nil, iss
		}
		t.v = tm
		return tm, nil
	}
	return nil, gorecord.NewIssue(gorecord.CodeUnsupportedType, map[string]any{"expected": "time or string", "got": fmt.Sprintf("%T", raw)})
}

// current returns the stored time, or now when nothing is stored.
func (t *timeValue) current() (time.Time, error) {
	v, err := t.Required.Resolve()
	if err != nil {
		return time.Time{}, err
	}
	if Falsy(v) {
		return t.now(), nil
	}
	tm, ok := v.(time.Time)
	if !ok {
		return time.Time{}, gorecord.NewIssue(gorecord.CodeTypeMismatch, map[string]any{"expected": "time", "got": fmt.Sprintf("%T", v)})
	}
	return tm, nil
}

func (t *timeValue) parse(s string) (time.Time, error) {
	if strings.Contains(t.layout, "%") {
		return timefmt.ParseInLocation(s, t.layout, t.loc)
	}
	return time.ParseInLocation(t.layout, s, t.loc)
}

func (t *timeValue) format(tm time.Time) string {
	if strings.Contains(t.layout, "%") {
		return timefmt.Format(tm, t.layout)
	}
	return tm.Format(t.layout)
}

func (t *timeValue) clone() timeValue {
	return timeValue{Required: Required{Plain: Plain{v: t.v}, required: t.required}, layout: t.layout, loc: t.loc, now: t.now}
}

// Timestamp stores a time and resolves to it formatted with the layout,
// defaulting to the current time.
type Timestamp struct {
	timeValue
}

// NewTimestamp returns a Timestamp. def may be nil or a time.Time.
func NewTimestamp(layout string, def any, required bool, opts ...TimeOption) *Timestamp {
	return &Timestamp{timeValue: newTimeValue(layout, def, required, opts)}
}

// Apply accepts a time.Time or a string in the layout and returns the time.
func (t *Timestamp) Apply(raw any) (any, error) { return t.apply(raw) }

// Resolve formats the stored (or current) time.
func (t *Timestamp) Resolve() (any, error) {
	tm, err := t.current()
	if err != nil {
		return nil, err
	}
	return t.format(tm), nil
}

// Layout returns the configured layout.
func (t *Timestamp) Layout() string { return t.layout }

func (t *Timestamp) Clone() gorecord.Wrapper { return &Timestamp{timeValue: t.clone()} }

func (t *Timestamp) JSONSchema() *js.Schema { return &js.Schema{Type: "string", Format: "date-time"} }

// Epoch stores a time and resolves to its Unix seconds, defaulting to the
// current time. The layout is only used to parse strings.
type Epoch struct {
	timeValue
}

// NewEpoch returns an Epoch. def may be nil or a time.Time.
func NewEpoch(layout string, def any, required bool, opts ...TimeOption) *Epoch {
	return &Epoch{timeValue: newTimeValue(layout, def, required, opts)}
}

// Apply accepts a time.Time or a string in the layout and returns the time.
// Apply accepts a time.Time, a string in the layout, or Unix seconds as
// stored by ToPlainTree.
func (e *Epoch) Apply(raw any) (any, error) {
	if f, ok := num.Float(raw); ok {
		tm := time.Unix(int64(f), 0)
		e.v = tm
		return tm, nil
	}
	return e.apply(raw)
}

// Resolve returns the stored (or current) time in Unix seconds.
func (e *Epoch) Resolve() (any, error) {
	tm, err := e.current()
	if err != nil {
		return nil, err
	}
	return tm.Unix(), nil
}

func (e *Epoch) Clone() gorecord.Wrapper { return &Epoch{timeValue: e.clone()} }

func (e *Epoch) JSONSchema() *js.Schema { return &js.Schema{Type: "integer"} }

var (
	_ gorecord.Holder = (*Timestamp)(nil)
	_ gorecord.Holder = (*Epoch)(nil)
)
