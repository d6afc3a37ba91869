package gorecord

import (
	"fmt"
)

// assign routes one field assignment. The first matching rule wins:
//
//  1. strict schema and undeclared field: unknown field error
//  2. undeclared (or untyped) field: store raw
//  3. raw has exactly the descriptor's runtime type: store raw
//  4. type requirement satisfied by raw: store raw
//  5. nested record marker and raw is a record: store raw
//  6. Holder wrapper: Apply on the wrapper already in the field
//  7. other wrapper: store raw, replacing the wrapper
//  8. anything else: dropped
func (r *Record) assign(name string, raw any) error {
	if err := checkKeyAllowed(r.surface, name); err != nil {
		return err
	}
	d, declared := r.schema.Descriptor(name)
	if r.schema.strict && !declared {
		return Issues{RootPath().Field(name).Issue(CodeUnknownField, map[string]any{"field": name})}
	}
	switch {
	case !declared || d.untyped():
		r.put(name, raw)
	case d.sameType(raw):
		r.put(name, raw)
	case d.kind == KindType && d.typ.IsInstance(raw):
		r.put(name, raw)
	case d.kind == KindNested && d.record == nil && isRecord(raw):
		r.put(name, raw)
	case d.kind == KindWrapper:
		if _, ok := d.wrapper.(Holder); !ok {
			r.put(name, raw)
			return nil
		}
		cur, ok := r.fields[name].(Wrapper)
		if !ok {
			// the field was overwritten by ForceUpdate or a load; start over
			// from the declared wrapper
			cur = d.wrapper.Clone()
			r.put(name, cur)
		}
		if _, err := cur.Apply(raw); err != nil {
			return rebase(RootPath().Field(name), err, CodeTypeMismatch)
		}
	default:
		if r.schema.rejectUnmatched {
			return Issues{RootPath().Field(name).Issue(CodeTypeMismatch, map[string]any{
				"field": name, "expected": d.kind.String(), "got": fmt.Sprintf("%T", raw),
			})}
		}
		logger.Debug().Str("schema", r.schema.name).Str("field", name).
			Str("descriptor", d.kind.String()).Str("got", fmt.Sprintf("%T", raw)).
			Msg("assignment dropped: no dispatch rule matched")
	}
	return nil
}

func isRecord(v any) bool {
	rec, ok := v.(*Record)
	return ok && rec != nil
}
