package gorecord

import (
	"fmt"

	"github.com/reoring/gorecord/text"
)

// LoadFrom materializes a document (a string-keyed mapping, typically read
// from a database) into the record. For every declared field present in the
// document: nested record defaults are loaded recursively, record type
// requirements get a fresh record loaded recursively, and anything else is
// copied without coercion. Fields absent from the document keep their
// defaults, and document keys the schema does not declare (store metadata
// such as "_id") are ignored. Raw values in wrapper fields are validated
// later by Check and ToPlainTree.
//
// strict is passed unchanged to every nested load and is not enforced here;
// use Schema.CheckKeys to reject undeclared keys.
func (r *Record) LoadFrom(doc any, strict bool) error {
	m, ok := asStringMap(doc)
	if !ok {
		return Issues{RootPath().Issue(CodeUnsupportedType, map[string]any{"got": fmt.Sprintf("%T", doc), "expected": "mapping"})}
	}
	for _, f := range r.schema.fields {
		v, present := m[f.Name]
		if !present {
			continue
		}
		d := f.Descriptor
		switch {
		case d.kind == KindNested && d.record != nil:
			child, ok := r.fields[f.Name].(*Record)
			if !ok || child == nil {
				child = d.record.Clone()
			}
			if err := child.LoadFrom(v, strict); err != nil {
				return rebase(RootPath().Field(f.Name), err, CodeUnsupportedType)
			}
			r.put(f.Name, child)
		case d.kind == KindType && d.typ.IsRecord():
			child, err := New(d.typ.Schema(), nil)
			if err != nil {
				return rebase(RootPath().Field(f.Name), err, CodeSchemaConflict)
			}
			if err := child.LoadFrom(v, strict); err != nil {
				return rebase(RootPath().Field(f.Name), err, CodeUnsupportedType)
			}
			r.put(f.Name, child)
		default:
			r.put(f.Name, v)
		}
	}
	logger.Debug().Str("schema", r.schema.name).Int("keys", len(m)).Bool("strict", strict).Msg("document loaded")
	return nil
}

// CheckKeys reports the first top-level document key a strict schema does
// not declare as an unknown field. Permissive schemas accept any key.
func (s *Schema) CheckKeys(doc any) error {
	m, ok := asStringMap(doc)
	if !ok {
		return Issues{RootPath().Issue(CodeUnsupportedType, map[string]any{"got": fmt.Sprintf("%T", doc), "expected": "mapping"})}
	}
	if !s.strict {
		return nil
	}
	for _, k := range sortedKeys(m) {
		if !s.Has(k) {
			return Issues{RootPath().Field(k).Issue(CodeUnknownField, map[string]any{"field": k})}
		}
	}
	return nil
}

// LoadNew constructs a record of schema s and loads doc into it.
func LoadNew(s *Schema, doc any, strict bool, opts ...Option) (*Record, error) {
	r, err := New(s, nil, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.LoadFrom(doc, strict); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadJSON decodes JSON text and loads it with LoadFrom.
func (r *Record) LoadJSON(data []byte, strict bool) error {
	doc, err := text.DecodeJSON(data)
	if err != nil {
		return Issues{{Path: "/", Code: CodeUnsupportedType, Message: err.Error(), Cause: err}}
	}
	return r.LoadFrom(doc, strict)
}

// LoadEasy assigns a mapping through the dispatch rules. It reports false,
// leaving the record untouched, when doc is not a mapping.
func (r *Record) LoadEasy(doc any) (bool, error) {
	if _, ok := asStringMap(doc); !ok {
		return false, nil
	}
	return true, r.Update(doc)
}
