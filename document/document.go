// Package document binds records to a document store: a record loaded from
// a stored document, saved back as its plain tree, addressed by collection
// and ID.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reoring/gorecord"
)

// ErrNotFound is returned by stores when no document has the given ID.
var ErrNotFound = errors.New("document: not found")

// Store persists plain trees by collection and ID. Implementations must not
// retain or share the maps they are given or return.
type Store interface {
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	Put(ctx context.Context, collection, id string, doc map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Exists(ctx context.Context, collection, id string) (bool, error)
}

// Document is a record bound to a store. Field names are checked against
// the method set of *Document, so "id", "save" and "exists" are reserved in
// addition to the record's own names.
type Document struct {
	*gorecord.Record
	id         string
	collection string
	store      Store
}

// New constructs a document of schema s with a fresh random ID.
func New(store Store, collection string, s *gorecord.Schema, overrides map[string]any) (*Document, error) {
	if store == nil {
		return nil, errors.New("document: nil store")
	}
	if collection == "" {
		return nil, errors.New("document: empty collection")
	}
	r, err := gorecord.New(s, overrides, gorecord.AsVariant((*Document)(nil)))
	if err != nil {
		return nil, err
	}
	return &Document{Record: r, id: uuid.NewString(), collection: collection, store: store}, nil
}

// Open constructs a document of schema s and loads the stored document id.
func Open(ctx context.Context, store Store, collection string, s *gorecord.Schema, id string, strict bool) (*Document, error) {
	d, err := New(store, collection, s, nil)
	if err != nil {
		return nil, err
	}
	if err := d.Load(ctx, id, strict); err != nil {
		return nil, err
	}
	return d, nil
}

// ID returns the document ID.
func (d *Document) ID() string { return d.id }

// Collection returns the collection name.
func (d *Document) Collection() string { return d.collection }

// Load reads the stored document id into the record with LoadFrom and
// adopts id.
func (d *Document) Load(ctx context.Context, id string, strict bool) error {
	doc, err := d.store.Get(ctx, d.collection, id)
	if err != nil {
		return fmt.Errorf("load %s/%s: %w", d.collection, id, err)
	}
	if err := d.LoadFrom(doc, strict); err != nil {
		return err
	}
	d.id = id
	gorecord.Logger().Debug().Str("collection", d.collection).Str("id", id).Msg("document loaded from store")
	return nil
}

// Save validates the record and stores its plain tree under the document ID.
func (d *Document) Save(ctx context.Context) error {
	if err := d.Check(); err != nil {
		return err
	}
	tree, err := d.ToPlainTree()
	if err != nil {
		return err
	}
	if err := d.store.Put(ctx, d.collection, d.id, tree); err != nil {
		return fmt.Errorf("save %s/%s: %w", d.collection, d.id, err)
	}
	gorecord.Logger().Debug().Str("collection", d.collection).Str("id", d.id).Int("fields", len(tree)).Msg("document saved")
	return nil
}

// Exists reports whether the store holds a document with this ID.
func (d *Document) Exists(ctx context.Context) (bool, error) {
	ok, err := d.store.Exists(ctx, d.collection, d.id)
	if err != nil {
		return false, fmt.Errorf("exists %s/%s: %w", d.collection, d.id, err)
	}
	return ok, nil
}

// Delete removes the stored document. Deleting a missing document is not an
// error.
func (d *Document) Delete(ctx context.Context) error {
	if err := d.store.Delete(ctx, d.collection, d.id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", d.collection, d.id, err)
	}
	return nil
}
