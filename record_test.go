package gorecord_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/value"
)

var person = gorecord.Define("Person").Value("name", "").Value("age", 0).MustBuild()

func TestNew_ExportsDefaults(t *testing.T) {
	r, err := gorecord.New(person, nil)
	require.NoError(t, err)
	tree, err := r.ToPlainTree()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"name": "", "age": 0}, tree)
	require.Equal(t, []string{"name", "age"}, r.Keys())
}

func TestNew_Overrides(t *testing.T) {
	r, err := gorecord.New(person, map[string]any{"name": "a", "age": 3, "nick": "x"})
	require.NoError(t, err)
	require.Equal(t, []string{"name", "age", "nick"}, r.Keys())
	v, _ := r.Get("age")
	require.Equal(t, 3, v)
}

func TestNew_DefaultsAreNotShared(t *testing.T) {
	bag := gorecord.Define("Bag").Value("tags", []any{"a"}).Value("meta", map[string]any{"k": 1}).MustBuild()
	r1 := gorecord.MustNew(bag, nil)
	r2 := gorecord.MustNew(bag, nil)

	tags, _ := r1.Get("tags")
	tags.([]any)[0] = "z"
	meta, _ := r1.Get("meta")
	meta.(map[string]any)["k"] = 2

	tree, err := r2.ToPlainTree()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"tags": []any{"a"}, "meta": map[string]any{"k": 1}}, tree)

	d, _ := bag.Descriptor("tags")
	require.Equal(t, []any{"a"}, d.LiteralValue())
}

func TestNew_WrappersAreNotShared(t *testing.T) {
	s := gorecord.Define("W").Field("name", gorecord.Wrap(value.NewRequired("", true))).MustBuild()
	r1 := gorecord.MustNew(s, nil)
	r2 := gorecord.MustNew(s, nil)
	require.NoError(t, r1.Set("name", "bob"))

	w1, _ := r1.Get("name")
	w2, _ := r2.Get("name")
	require.NotSame(t, w1, w2)
	require.Equal(t, "", w2.(gorecord.Holder).Stored())
}

func TestNew_ReservedNames(t *testing.T) {
	for _, name := range []string{"update", "to_json", "Equals", "load_from", "to_plain_tree"} {
		s := gorecord.Define("Bad").Value(name, 1).MustBuild()
		_, err := gorecord.New(s, nil)
		require.True(t, gorecord.HasCode(err, gorecord.CodeSchemaConflict), "%s: %v", name, err)
	}

	r := gorecord.MustNew(person, nil)
	err := r.Set("check", 1)
	require.True(t, gorecord.HasCode(err, gorecord.CodeSchemaConflict))
	_, has := r.Get("check")
	require.False(t, has)
}

type post struct{ *gorecord.Record }

func (post) Publish() {}

func TestNew_VariantReservedNames(t *testing.T) {
	s := gorecord.Define("Post").Value("publish", false).MustBuild()
	_, err := gorecord.New(s, nil)
	require.NoError(t, err)
	_, err = gorecord.New(s, nil, gorecord.AsVariant((*post)(nil)))
	require.True(t, gorecord.HasCode(err, gorecord.CodeSchemaConflict))
}

func TestNew_PreNew(t *testing.T) {
	s := gorecord.Define("Stamped").Value("name", "").
		PreNew(func(m map[string]any) map[string]any {
			m["kind"] = "stamped"
			return m
		}).MustBuild()
	r := gorecord.MustNew(s, map[string]any{"name": "a"})
	tree, err := r.ToPlainTree()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"name": "a", "kind": "stamped"}, tree)
}

func TestUpdate(t *testing.T) {
	r := gorecord.MustNew(person, nil)
	require.NoError(t, r.Update(map[string]any{"name": "a", "age": "old"}))
	require.NoError(t, r.Update("not a mapping"))
	tree, err := r.ToPlainTree()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"name": "a", "age": 0}, tree)

	require.NoError(t, r.Update(map[string]string{"name": "b"}))
	v, _ := r.Get("name")
	require.Equal(t, "b", v)
}

func TestForceUpdate_SkipsDispatch(t *testing.T) {
	r := gorecord.MustNew(person, nil).ForceUpdate(map[string]any{"age": "old", "check": 1})
	v, _ := r.Get("age")
	require.Equal(t, "old", v)
	v, _ = r.Get("check")
	require.Equal(t, 1, v)
}

func TestClone(t *testing.T) {
	r := gorecord.MustNew(person, map[string]any{"name": "a"})
	c := r.Clone()
	require.NoError(t, c.Set("name", "b"))
	v, _ := r.Get("name")
	require.Equal(t, "a", v)
	require.Same(t, r.Schema(), c.Schema())
}

func TestStrictRecord(t *testing.T) {
	s := gorecord.Define("StrictPerson").Inherit(person).Strict().MustBuild()
	r := gorecord.MustNew(s, nil)
	err := r.Set("nick", "x")
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, gorecord.CodeUnknownField, iss[0].Code)
	require.Equal(t, "/nick", iss[0].Path)

	_, err = gorecord.New(s, map[string]any{"nick": "x"})
	require.Error(t, err)

	require.NoError(t, gorecord.MustNew(person, nil).Set("nick", "x"))
}

func TestResolve(t *testing.T) {
	s := gorecord.Define("R").Field("name", gorecord.Wrap(value.NewRequired("", true))).Value("n", 1).MustBuild()
	r := gorecord.MustNew(s, nil)

	v, err := r.Resolve("n")
	require.NoError(t, err)
	require.Equal(t, 1, v)

	_, err = r.Resolve("name")
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "/name", iss[0].Path)

	v, err = r.Resolve("missing")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestInheritance(t *testing.T) {
	employee := gorecord.Define("Employee").Inherit(person).Value("company", "").MustBuild()
	require.True(t, employee.Is(person))
	require.False(t, person.Is(employee))
	require.Equal(t, []string{"name", "age", "company"}, employee.Keys())

	r := gorecord.MustNew(employee, nil)
	require.True(t, gorecord.RecordOf(person).IsInstance(r))
	require.False(t, gorecord.RecordOf(employee).IsInstance(gorecord.MustNew(person, nil)))
}

func TestSchemaBuild_Errors(t *testing.T) {
	_, err := gorecord.Define("").Build()
	require.Error(t, err)
	_, err = gorecord.Define("X").Value("", 1).Build()
	require.Error(t, err)
	require.Panics(t, func() { gorecord.Define("").MustBuild() })

	type point struct{ X int }
	_, err = gorecord.Define("P").Value("at", &point{X: 1}).Build()
	require.ErrorContains(t, err, "pointer literal")
	_, err = gorecord.Define("P").Value("at", point{X: 1}).Build()
	require.NoError(t, err)
}
