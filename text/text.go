// Package text converts JSON and YAML documents into plain trees
// (map[string]any, []any and scalars) ready for Record.LoadFrom.
//
// Numbers are decoded exactly: integral values become int, everything else
// float64, so decoded documents match literal prototypes such as 0 or 0.0.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a single JSON value.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("text: decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("text: decode json: trailing data after value")
	}
	return normalize(v), nil
}

// EncodeJSON renders a plain tree as JSON with sorted object keys.
func EncodeJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("text: encode json: %w", err)
	}
	return b, nil
}

// DecodeYAML decodes the first YAML document.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("text: decode yaml: %w", err)
	}
	return normalize(v), nil
}

// DecodeYAMLAll decodes every document of a multi-document YAML stream.
func DecodeYAMLAll(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("text: decode yaml: %w", err)
		}
		out = append(out, normalize(v))
	}
	return out, nil
}

// normalize converts map[any]any into map[string]any and json.Number into
// int or float64, recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalize(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalize(t[i])
		}
		return arr
	case json.Number:
		if i, err := t.Int64(); err == nil && int64(int(i)) == i {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
