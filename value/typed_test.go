package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/value"
)

var person = gorecord.Define("Person").Value("name", "").MustBuild()

var strictPerson = gorecord.Define("StrictPerson").Value("name", "").Strict().MustBuild()

func TestList_Defaults(t *testing.T) {
	l := value.NewList()
	v, err := l.Resolve()
	require.NoError(t, err)
	require.Equal(t, []any{}, v)

	_, err = value.NewList(value.ListRequired(), value.ListNeedSize()).Resolve()
	require.True(t, gorecord.HasCode(err, gorecord.CodeRequiredValue))

	v, err = value.NewList(value.ListRequired()).Resolve()
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestList_NotASequence(t *testing.T) {
	l := value.NewList()
	_, _ = l.Apply("abc")
	_, err := l.Resolve()
	require.True(t, gorecord.HasCode(err, gorecord.CodeTypeMismatch))
}

func TestList_ElementType(t *testing.T) {
	l := value.NewList(value.ListOf(gorecord.TypeOf[string]()), value.ListDefault([]any{"a", 2}))
	_, err := l.Resolve()
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "/1", iss[0].Path)
	require.Equal(t, gorecord.CodeTypeMismatch, iss[0].Code)
}

func TestList_RecordElements(t *testing.T) {
	rec := gorecord.MustNew(person, map[string]any{"name": "a"})

	l := value.NewList(value.ListOf(gorecord.RecordOf(person)))
	_, _ = l.Apply([]any{rec, map[string]any{"name": "b", "age": 3}})
	_, err := l.Resolve()
	require.NoError(t, err, "permissive element schemas accept extra keys")

	_, _ = l.Apply([]any{map[string]any{"age": 3}})
	_, err = l.Resolve()
	require.Error(t, err, "missing schema keys are rejected")

	sl := value.NewList(value.ListOf(gorecord.RecordOf(strictPerson)))
	_, _ = sl.Apply([]any{map[string]any{"name": "b"}})
	_, err = sl.Resolve()
	require.NoError(t, err)

	_, _ = sl.Apply([]any{map[string]any{"name": "b", "age": 3}})
	_, err = sl.Resolve()
	require.Error(t, err)

	_, _ = sl.Apply([]any{rec})
	_, err = sl.Resolve()
	require.Error(t, err, "a Person record is not a StrictPerson")
}

func TestList_AllowRaw(t *testing.T) {
	l := value.NewList(value.ListOf(gorecord.RecordOf(strictPerson)), value.ListAllowRaw())
	_, _ = l.Apply([]any{map[string]any{"anything": 1}, 5})
	_, err := l.Resolve()
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "/1", iss[0].Path, "raw mappings pass, other elements are still checked")
}

func TestList_InRecord(t *testing.T) {
	s := gorecord.Define("Team").
		Field("members", gorecord.Wrap(value.NewList(value.ListOf(gorecord.RecordOf(person)), value.ListRequired(), value.ListNeedSize()))).
		MustBuild()
	r := gorecord.MustNew(s, nil)

	err := r.Check()
	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "/members", iss[0].Path)
	require.Equal(t, gorecord.CodeRequiredValue, iss[0].Code)

	require.NoError(t, r.Set("members", []any{gorecord.MustNew(person, map[string]any{"name": "x"})}))
	tree, err := r.ToPlainTree()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"members": []any{map[string]any{"name": "x"}}}, tree)
}
