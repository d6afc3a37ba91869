package value

import (
	"fmt"

	"github.com/reoring/gorecord"
	js "github.com/reoring/gorecord/jsonschema"
)

// Plain stores one value as is.
type Plain struct {
	v any
}

// NewPlain returns a Plain holding def.
func NewPlain(def any) *Plain { return &Plain{v: def} }

// Apply replaces the stored value.
func (p *Plain) Apply(raw any) (any, error) {
	p.v = raw
	return raw, nil
}

// Resolve returns the stored value.
func (p *Plain) Resolve() (any, error) { return p.v, nil }

// Stored returns the stored value.
func (p *Plain) Stored() any { return p.v }

func (p *Plain) Clone() gorecord.Wrapper { return &Plain{v: gorecord.DeepCopy(p.v)} }

func (p *Plain) JSONSchema() *js.Schema { return &js.Schema{Default: p.v} }

func (p *Plain) String() string { return fmt.Sprintf("Plain(%v)", p.v) }

// Required is a Plain that fails to resolve while required and falsy. Zero
// numbers and empty strings count as falsy, so a required field cannot hold
// them.
type Required struct {
	Plain
	required bool
}

// NewRequired returns a Required holding def.
func NewRequired(def any, required bool) *Required {
	return &Required{Plain: Plain{v: def}, required: required}
}

// Resolve returns the stored value, or a required_value issue.
func (r *Required) Resolve() (any, error) {
	if r.required && Falsy(r.v) {
		return nil, gorecord.NewIssue(gorecord.CodeRequiredValue, nil)
	}
	return r.v, nil
}

// IsRequired reports the required flag.
func (r *Required) IsRequired() bool { return r.required }

func (r *Required) Clone() gorecord.Wrapper {
	return &Required{Plain: Plain{v: gorecord.DeepCopy(r.v)}, required: r.required}
}

func (r *Required) String() string { return fmt.Sprintf("Required(%v, required=%t)", r.v, r.required) }

// Computed resolves to the result of a function. It holds no state: Apply
// returns raw untouched, and assigning to a Computed field replaces the
// wrapper with the assigned value.
type Computed struct {
	fn func() (any, error)
}

// NewComputed returns a Computed backed by fn.
func NewComputed(fn func() (any, error)) *Computed { return &Computed{fn: fn} }

func (c *Computed) Apply(raw any) (any, error) { return raw, nil }

func (c *Computed) Resolve() (any, error) {
	if c.fn == nil {
		return nil, nil
	}
	return c.fn()
}

func (c *Computed) Clone() gorecord.Wrapper { return &Computed{fn: c.fn} }

var (
	_ gorecord.Holder  = (*Plain)(nil)
	_ gorecord.Holder  = (*Required)(nil)
	_ gorecord.Wrapper = (*Computed)(nil)
)
