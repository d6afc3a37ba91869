// Package value provides the built-in field wrappers.
//
// Every wrapper implements gorecord.Wrapper (Apply, Resolve, Clone). All
// wrappers except Computed also implement gorecord.Holder, so assignments to
// their fields mutate the wrapper in place.
//
//	Plain      stores any value
//	Required   Plain that fails to resolve when required and falsy
//	Timestamp  time stored, resolved as a formatted string ("now" when unset)
//	Epoch      time stored, resolved as Unix seconds ("now" when unset)
//	Typed      Required whose value must be an instance of a type
//	List       list with size and per-element type checks
//	Range      number within [min, max]
//	Enum       accumulates values taken from an allowed set
//	Computed   read-only value produced by a function
//
// Wrapped fields can be used like raw values through Equal, Compare,
// Truthy, Len and Add, which operate on the resolved value.
package value
