package gorecord

// Wrapper is a constrained value owning the coercion and validation state of
// one field. Apply coerces a raw value, updates the state and returns the
// coerced value; Resolve computes the effective value (for example a
// formatted timestamp, or "now" when unset).
//
// The built-in variants live in package value.
type Wrapper interface {
	Apply(raw any) (any, error)
	Resolve() (any, error)
	// Clone returns an independent copy, used when a schema is copied into a
	// new record.
	Clone() Wrapper
}

// Holder is a Wrapper that mutates in place: assignments to a field declared
// with a Holder call Apply on the wrapper already stored in the field instead
// of replacing it, so the wrapper identity is stable for the life of the
// record.
type Holder interface {
	Wrapper
	// Stored returns the raw state without resolving it.
	Stored() any
}
