// Package schemafile declares record schemas in YAML.
//
//	records:
//	  Address:
//	    fields:
//	      city: ""
//	  Person:
//	    strict: true
//	    ignore_on_equals: [updated]
//	    fields:
//	      name: ""                               # literal default
//	      age: 0
//	      extra: {}                              # nested record marker
//	      home: {record: Address}                # nested record default
//	      boss: {type: Person}                   # type requirement
//	      meta: {literal: {source: import}}      # literal mapping default
//	      email: {wrap: required, default: "", required: true}
//	      born: {wrap: timestamp, layout: "%Y-%m-%d"}
//	      score: {wrap: range, default: 1, min: 1, max: 5}
//	      friends: {wrap: list, of: Person, need_size: true, required: true}
//
// Field order follows the file. Type requirements may refer to any record in
// the file, including the one being declared; record defaults and inherit
// must not form a cycle.
package schemafile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/value"
)

// Set is the collection of schemas declared by one file.
type Set struct {
	order   []string
	schemas map[string]*gorecord.Schema
}

// Names returns the record names in file order.
func (s *Set) Names() []string { return append([]string(nil), s.order...) }

// Schema returns the schema of a record.
func (s *Set) Schema(name string) (*gorecord.Schema, bool) {
	sc, ok := s.schemas[name]
	return sc, ok
}

// Load reads and parses a schema file.
func Load(path string) (*Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return Parse(b)
}

type fileSpec struct {
	Records yaml.Node `yaml:"records"`
}

type recordSpec struct {
	Strict          *bool     `yaml:"strict"`
	Inherit         string    `yaml:"inherit"`
	IgnoreOnEquals  []string  `yaml:"ignore_on_equals"`
	RejectUnmatched bool      `yaml:"reject_unmatched"`
	Fields          yaml.Node `yaml:"fields"`
}

type wrapSpec struct {
	Wrap     string `yaml:"wrap"`
	Default  any    `yaml:"default"`
	Required bool   `yaml:"required"`
	Layout   string `yaml:"layout"`
	Type     string `yaml:"type"`
	Of       string `yaml:"of"`
	NeedSize bool   `yaml:"need_size"`
	AllowRaw bool   `yaml:"allow_raw"`
	Min      any    `yaml:"min"`
	Max      any    `yaml:"max"`
	Compat   bool   `yaml:"compat"`
	Allowed  []any  `yaml:"allowed"`
}

type recordRef struct {
	Record string         `yaml:"record"`
	With   map[string]any `yaml:"with"`
}

const (
	pending = iota
	building
	done
)

type parser struct {
	nodes    map[string]*yaml.Node
	builders map[string]*gorecord.SchemaBuilder
	state    map[string]int
	set      *Set
}

// Parse parses schema declarations from YAML text.
func Parse(data []byte) (*Set, error) {
	var fs fileSpec
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if fs.Records.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schemafile: line %d: records must be a mapping", fs.Records.Line)
	}
	p := &parser{
		nodes:    map[string]*yaml.Node{},
		builders: map[string]*gorecord.SchemaBuilder{},
		state:    map[string]int{},
		set:      &Set{schemas: map[string]*gorecord.Schema{}},
	}
	for i := 0; i+1 < len(fs.Records.Content); i += 2 {
		name := fs.Records.Content[i].Value
		if _, dup := p.nodes[name]; dup {
			return nil, fmt.Errorf("schemafile: line %d: record %s declared twice", fs.Records.Content[i].Line, name)
		}
		p.nodes[name] = fs.Records.Content[i+1]
		p.builders[name] = gorecord.Define(name)
		p.set.order = append(p.set.order, name)
	}
	for _, name := range p.set.order {
		if _, err := p.build(name); err != nil {
			return nil, err
		}
	}
	return p.set, nil
}

func (p *parser) build(name string) (*gorecord.Schema, error) {
	switch p.state[name] {
	case done:
		return p.set.schemas[name], nil
	case building:
		return nil, fmt.Errorf("schemafile: record %s: cyclic inherit or record default", name)
	}
	node, ok := p.nodes[name]
	if !ok {
		return nil, fmt.Errorf("schemafile: unknown record %s", name)
	}
	p.state[name] = building

	var rs recordSpec
	if err := node.Decode(&rs); err != nil {
		return nil, fmt.Errorf("schemafile: record %s: %w", name, err)
	}
	b := p.builders[name]
	if rs.Inherit != "" {
		parent, err := p.build(rs.Inherit)
		if err != nil {
			return nil, err
		}
		b.Inherit(parent)
	}
	if rs.Strict != nil {
		if *rs.Strict {
			b.Strict()
		} else {
			b.Permissive()
		}
	}
	b.IgnoreOnEquals(rs.IgnoreOnEquals...)
	if rs.RejectUnmatched {
		b.RejectUnmatched()
	}

	if rs.Fields.Kind != 0 && rs.Fields.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schemafile: line %d: record %s: fields must be a mapping", rs.Fields.Line, name)
	}
	for i := 0; i+1 < len(rs.Fields.Content); i += 2 {
		key, val := rs.Fields.Content[i], rs.Fields.Content[i+1]
		d, err := p.descriptor(val)
		if err != nil {
			return nil, fmt.Errorf("schemafile: line %d: %s.%s: %w", key.Line, name, key.Value, err)
		}
		b.Field(key.Value, d)
	}

	s, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("schemafile: record %s: %w", name, err)
	}
	p.set.schemas[name] = s
	p.state[name] = done
	return s, nil
}

func (p *parser) descriptor(n *yaml.Node) (gorecord.Descriptor, error) {
	if n.Kind != yaml.MappingNode {
		var v any
		if err := n.Decode(&v); err != nil {
			return gorecord.Descriptor{}, err
		}
		return gorecord.Literal(v), nil
	}
	if len(n.Content) == 0 {
		return gorecord.Nested(), nil
	}
	switch {
	case hasKey(n, "literal"):
		var v struct {
			Literal any `yaml:"literal"`
		}
		if err := n.Decode(&v); err != nil {
			return gorecord.Descriptor{}, err
		}
		return gorecord.Literal(v.Literal), nil
	case hasKey(n, "wrap"):
		var ws wrapSpec
		if err := n.Decode(&ws); err != nil {
			return gorecord.Descriptor{}, err
		}
		w, err := p.wrapper(ws)
		if err != nil {
			return gorecord.Descriptor{}, err
		}
		return gorecord.Wrap(w), nil
	case hasKey(n, "record"):
		var rr recordRef
		if err := n.Decode(&rr); err != nil {
			return gorecord.Descriptor{}, err
		}
		s, err := p.build(rr.Record)
		if err != nil {
			return gorecord.Descriptor{}, err
		}
		def, err := gorecord.New(s, rr.With)
		if err != nil {
			return gorecord.Descriptor{}, err
		}
		return gorecord.Describe(def), nil
	case hasKey(n, "type"):
		var ts struct {
			Type string `yaml:"type"`
		}
		if err := n.Decode(&ts); err != nil {
			return gorecord.Descriptor{}, err
		}
		if ts.Type == "any" {
			return gorecord.Literal(nil), nil
		}
		t, err := p.typeRef(ts.Type)
		if err != nil {
			return gorecord.Descriptor{}, err
		}
		return gorecord.Type(t), nil
	}
	var v map[string]any
	if err := n.Decode(&v); err != nil {
		return gorecord.Descriptor{}, err
	}
	return gorecord.Literal(v), nil
}

// typeRef maps a type name to a requirement: a builtin name or a record
// declared in the same file.
func (p *parser) typeRef(name string) (gorecord.TypeRef, error) {
	switch name {
	case "string":
		return gorecord.TypeOf[string](), nil
	case "int":
		return gorecord.TypeOf[int](), nil
	case "float":
		return gorecord.TypeOf[float64](), nil
	case "bool":
		return gorecord.TypeOf[bool](), nil
	case "list":
		return gorecord.TypeOf[[]any](), nil
	case "map":
		return gorecord.TypeOf[map[string]any](), nil
	case "time":
		return gorecord.TypeOf[time.Time](), nil
	}
	b, ok := p.builders[name]
	if !ok {
		return gorecord.TypeRef{}, fmt.Errorf("unknown type %q", name)
	}
	return gorecord.RecordOf(b.Schema()), nil
}

func (p *parser) wrapper(ws wrapSpec) (gorecord.Wrapper, error) {
	switch ws.Wrap {
	case "plain":
		return value.NewPlain(ws.Default), nil
	case "required":
		return value.NewRequired(ws.Default, ws.Required), nil
	case "typed":
		t, err := p.typeRef(ws.Type)
		if err != nil {
			return nil, err
		}
		return value.NewTyped(ws.Default, ws.Required, t), nil
	case "timestamp", "epoch":
		if ws.Layout == "" {
			return nil, fmt.Errorf("%s wrapper needs a layout", ws.Wrap)
		}
		var h gorecord.Holder
		if ws.Wrap == "timestamp" {
			h = value.NewTimestamp(ws.Layout, nil, ws.Required)
		} else {
			h = value.NewEpoch(ws.Layout, nil, ws.Required)
		}
		if ws.Default != nil {
			if _, err := h.Apply(ws.Default); err != nil {
				return nil, err
			}
		}
		return h, nil
	case "list":
		opts := []value.ListOption{value.ListDefault(ws.Default)}
		if ws.Required {
			opts = append(opts, value.ListRequired())
		}
		if ws.NeedSize {
			opts = append(opts, value.ListNeedSize())
		}
		if ws.AllowRaw {
			opts = append(opts, value.ListAllowRaw())
		}
		if ws.Of != "" {
			t, err := p.typeRef(ws.Of)
			if err != nil {
				return nil, err
			}
			opts = append(opts, value.ListOf(t))
		}
		return value.NewList(opts...), nil
	case "range":
		if ws.Min == nil || ws.Max == nil {
			return nil, fmt.Errorf("range wrapper needs min and max")
		}
		var opts []value.RangeOption
		if ws.Compat {
			opts = append(opts, value.RangeCompat())
		}
		return value.NewRange(ws.Default, ws.Min, ws.Max, opts...), nil
	case "enum":
		if len(ws.Allowed) == 0 {
			return nil, fmt.Errorf("enum wrapper needs allowed values")
		}
		return value.NewEnum(ws.Default, ws.Allowed...), nil
	}
	return nil, fmt.Errorf("unknown wrapper %q", ws.Wrap)
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}
