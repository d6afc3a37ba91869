package gorecord

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/gorecord/i18n"
)

type exporter struct{}

func (e exporter) onRecord(p PathRef, r *Record, _ struct{}) (any, error) {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		if err := r.checkRaw(p.Field(k), k); err != nil {
			return nil, serializationIssue(p.Field(k), err)
		}
		v, err := walk[struct{}, any](e, p.Field(k), r.fields[k], struct{}{})
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (e exporter) onSequence(p PathRef, rv reflect.Value, _ struct{}) (any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		v, err := walk[struct{}, any](e, p.Index(i), rv.Index(i).Interface(), struct{}{})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e exporter) onMapping(p PathRef, rv reflect.Value, _ struct{}) (any, error) {
	out := make(map[string]any, rv.Len())
	for _, k := range mapKeys(rv) {
		v, err := walk[struct{}, any](e, p.Field(k), mapIndex(rv, k), struct{}{})
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// onWrapper exports the resolved value, which may itself be a wrapper or a
// structure.
func (e exporter) onWrapper(p PathRef, w Wrapper, _ struct{}) (any, error) {
	v, err := w.Resolve()
	if err != nil {
		return nil, serializationIssue(p, err)
	}
	return walk[struct{}, any](e, p, v, struct{}{})
}

func serializationIssue(p PathRef, err error) Issues {
	return Issues{{
		Path:    p.Pointer(),
		Code:    CodeSerialization,
		Message: i18n.T(CodeSerialization, map[string]string{"cause": err.Error()}),
		Cause:   err,
	}}
}

func (exporter) onScalar(_ PathRef, v any, _ struct{}) (any, error) { return v, nil }

// ToPlainTree exports the record as scalars, []any and map[string]any only.
func (r *Record) ToPlainTree() (map[string]any, error) {
	v, err := walk[struct{}, any](exporter{}, RootPath(), r, struct{}{})
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// Export converts any tree into its plain form.
func Export(node any) (any, error) {
	return walk[struct{}, any](exporter{}, RootPath(), node, struct{}{})
}

// ToJSON returns the canonical JSON text of the plain tree (object keys sorted).
func (r *Record) ToJSON() ([]byte, error) {
	tree, err := r.ToPlainTree()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(tree)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeSerialization, Message: err.Error(), Cause: err}}
	}
	return b, nil
}

// ToYAML returns the YAML text of the plain tree.
func (r *Record) ToYAML() ([]byte, error) {
	tree, err := r.ToPlainTree()
	if err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(tree)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeSerialization, Message: fmt.Sprintf("yaml: %v", err), Cause: err}}
	}
	return b, nil
}
