package gorecord

// Package gorecord provides schema-declared records:
//
// - Schemas declare fields by example value, type requirement, nested record or wrapper
// - Assignments are coerced through a fixed dispatch order
// - Records validate, export to plain trees (JSON/YAML) and compare against plain trees
// - Documents read from a store are materialized with LoadFrom
// - Failures are reported via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep the record model in the root package; put wrappers under value/, persistence under document/.
// - Schemas are immutable after Build; every record owns deep copies of its defaults.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  person := gorecord.Define("Person").Value("name", "").Value("age", 0).MustBuild()
//  r, err := gorecord.New(person, map[string]any{"name": "a"})
//  tree, err := r.ToPlainTree()
//  ok, err := r.Equals(map[string]any{"name": "a", "age": 0})
//
