package document_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/document"
	"github.com/reoring/gorecord/document/memstore"
	"github.com/reoring/gorecord/value"
)

var address = gorecord.Define("Address").Value("city", "").MustBuild()

var user = gorecord.Define("User").
	Value("name", "").
	Value("age", 0).
	Field("email", gorecord.Wrap(value.NewRequired("", true))).
	Field("home", gorecord.NestedRecord(address, nil)).
	MustBuild()

func TestDocument_SaveAndOpen(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	d, err := document.New(store, "users", user, map[string]any{"name": "a", "age": 7, "email": "a@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, d.ID())
	require.Equal(t, "users", d.Collection())

	ok, err := d.Exists(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, d.Save(ctx))
	ok, err = d.Exists(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := document.Open(ctx, store, "users", user, d.ID(), true)
	require.NoError(t, err)
	require.Equal(t, d.ID(), got.ID())

	tree, err := d.ToPlainTree()
	require.NoError(t, err)
	eq, err := got.Equals(tree)
	require.NoError(t, err)
	require.True(t, eq)
}

func TestDocument_SaveChecksFirst(t *testing.T) {
	store := memstore.New()
	d, err := document.New(store, "users", user, nil)
	require.NoError(t, err)

	err = d.Save(context.Background())
	require.True(t, gorecord.HasCode(err, gorecord.CodeRequiredValue), "got %v", err)
	require.Equal(t, 0, store.Len("users"))
}

func TestDocument_SaveChecksLoadedValues(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Put(ctx, "users", "u1", map[string]any{"name": "a", "email": "", "_id": "u1"}))

	d, err := document.Open(ctx, store, "users", user, "u1", true)
	require.NoError(t, err)
	err = d.Save(ctx)
	require.True(t, gorecord.HasCode(err, gorecord.CodeRequiredValue), "got %v", err)

	require.NoError(t, d.Set("email", "a@example.com"))
	require.NoError(t, d.Save(ctx))
}

func TestDocument_LoadMissing(t *testing.T) {
	_, err := document.Open(context.Background(), memstore.New(), "users", user, "nope", false)
	require.True(t, errors.Is(err, document.ErrNotFound))
}

func TestDocument_Delete(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	d, err := document.New(store, "users", user, map[string]any{"email": "x@example.com"})
	require.NoError(t, err)
	require.NoError(t, d.Save(ctx))
	require.NoError(t, d.Delete(ctx))
	ok, err := d.Exists(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, d.Delete(ctx))
}

func TestDocument_ReservedNames(t *testing.T) {
	s := gorecord.Define("Bad").Value("save", 1).MustBuild()
	_, err := document.New(memstore.New(), "bad", s, nil)
	require.True(t, gorecord.HasCode(err, gorecord.CodeSchemaConflict))

	_, err = gorecord.New(s, nil)
	require.NoError(t, err, "plain records may use the name")
}

func TestDocument_NewArguments(t *testing.T) {
	_, err := document.New(nil, "users", user, nil)
	require.Error(t, err)
	_, err = document.New(memstore.New(), "", user, nil)
	require.Error(t, err)
}

func TestMemstore_ReturnsFreshTrees(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	in := map[string]any{"n": 1, "list": []any{"a"}}
	require.NoError(t, store.Put(ctx, "c", "1", in))
	in["n"] = 2

	a, err := store.Get(ctx, "c", "1")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"n": 1, "list": []any{"a"}}, a)
	a["list"] = nil

	b, err := store.Get(ctx, "c", "1")
	require.NoError(t, err)
	require.Equal(t, []any{"a"}, b["list"])
}
