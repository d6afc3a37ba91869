package gorecord_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/value"
)

func TestCheck_TypeReferenceLeak(t *testing.T) {
	r := gorecord.MustNew(dispatch, nil)
	err := r.Check()
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, gorecord.CodeSchemaConflict, iss[0].Code)
	require.Equal(t, "/count", iss[0].Path)

	require.NoError(t, r.Set("count", 1))
	require.NoError(t, r.Set("owner", gorecord.MustNew(person, nil)))
	require.NoError(t, r.Check())
}

func TestCheck_PlainTrees(t *testing.T) {
	require.NoError(t, gorecord.Check(map[string]any{"a": []any{1, "x"}}))

	err := gorecord.Check(map[string]any{"a": []any{1, gorecord.TypeOf[int]()}})
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "/a/1", iss[0].Path)

	err = gorecord.Check([]any{map[string]any{"s": person}})
	require.True(t, gorecord.HasCode(err, gorecord.CodeSchemaConflict))
}

func TestCheck_NestedWrapperFailure(t *testing.T) {
	inner := gorecord.Define("Inner").Field("v", gorecord.Wrap(value.NewRequired(0, true))).MustBuild()
	outer := gorecord.Define("Outer").Field("items", gorecord.Literal([]any{})).MustBuild()
	r := gorecord.MustNew(outer, map[string]any{"items": []any{gorecord.MustNew(inner, nil)}})

	err := r.Check()
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "/items/0/v", iss[0].Path)
	require.Equal(t, gorecord.CodeRequiredValue, iss[0].Code)
}

func TestExport_NestedAndWrapped(t *testing.T) {
	s := gorecord.Define("Profile").
		Field("home", gorecord.NestedRecord(address, nil)).
		Field("tags", gorecord.Wrap(value.NewList(value.ListDefault([]string{"a", "b"})))).
		Value("scores", map[string]int{"x": 1}).
		MustBuild()
	r := gorecord.MustNew(s, nil)
	tree, err := r.ToPlainTree()
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"home":   map[string]any{"city": ""},
		"tags":   []any{"a", "b"},
		"scores": map[string]any{"x": 1},
	}, tree)
}

func TestExport_SerializationError(t *testing.T) {
	s := gorecord.Define("Named").Field("name", gorecord.Wrap(value.NewRequired("", true))).MustBuild()
	r := gorecord.MustNew(s, nil)

	_, err := r.ToPlainTree()
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, gorecord.CodeSerialization, iss[0].Code)
	require.Equal(t, "/name", iss[0].Path)
	require.True(t, gorecord.HasCode(iss[0].Cause, gorecord.CodeRequiredValue))

	_, err = r.ToJSON()
	require.True(t, gorecord.HasCode(err, gorecord.CodeSerialization))
}

func TestToJSONAndYAML(t *testing.T) {
	r := gorecord.MustNew(person, map[string]any{"name": "a"})
	b, err := r.ToJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"a","age":0}`, string(b))

	y, err := r.ToYAML()
	require.NoError(t, err)
	require.YAMLEq(t, "name: a\nage: 0\n", string(y))
}

func TestEquals(t *testing.T) {
	r := gorecord.MustNew(person, map[string]any{"name": "a"})

	ok, err := r.Equals(map[string]any{"name": "a", "age": 0})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Equals(map[string]any{"name": "b", "age": 0})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.Equals(map[string]any{"name": "a", "age": 0.0})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Equals(map[string]any{"name": "a", "age": json.Number("0")})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEquals_StructuralMismatch(t *testing.T) {
	r := gorecord.MustNew(person, map[string]any{"name": "a"})

	_, err := r.Equals(map[string]any{"name": "a"})
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, gorecord.CodeStructuralMismatch, iss[0].Code)
	require.Equal(t, []string{"age"}, iss[0].Params["missing"])

	_, err = r.Equals(map[string]any{"name": "a", "age": []any{}})
	require.True(t, gorecord.HasCode(err, gorecord.CodeStructuralMismatch))

	_, err = r.Equals([]any{})
	require.True(t, gorecord.HasCode(err, gorecord.CodeStructuralMismatch))
}

func TestEquals_Records(t *testing.T) {
	a := gorecord.MustNew(person, map[string]any{"name": "a"})
	b := gorecord.MustNew(person, map[string]any{"name": "a"})
	ok, err := a.Equals(b)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, b.Set("age", 2))
	ok, err = a.Equals(b)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEquals_IgnoreList(t *testing.T) {
	s := gorecord.Define("Audited").Inherit(person).Value("updated", "").IgnoreOnEquals("updated").MustBuild()
	r := gorecord.MustNew(s, map[string]any{"updated": "today"})

	ok, err := r.Equals(map[string]any{"name": "", "age": 0})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Equals(map[string]any{"name": "", "age": 0, "updated": "yesterday"})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEquals_ResolvesWrappers(t *testing.T) {
	s := gorecord.Define("Titled").Field("title", gorecord.Wrap(value.NewRequired("x", false))).MustBuild()
	r := gorecord.MustNew(s, nil)
	ok, err := r.Equals(map[string]any{"title": "x"})
	require.NoError(t, err)
	require.True(t, ok)
}
