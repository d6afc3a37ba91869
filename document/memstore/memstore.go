// Package memstore provides an in-memory document.Store for tests and
// single-process use.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/reoring/gorecord/document"
	"github.com/reoring/gorecord/text"
)

// Store keeps documents as JSON text so that reads return fresh trees with
// the same number normalization as persistent stores.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte // collection -> id -> JSON
}

// New creates an empty store.
func New() *Store {
	return &Store{docs: make(map[string]map[string][]byte)}
}

// Get returns the document, or document.ErrNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	s.mu.RLock()
	b, ok := s.docs[collection][id]
	s.mu.RUnlock()
	if !ok {
		return nil, document.ErrNotFound
	}
	v, err := text.DecodeJSON(b)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("memstore: %s/%s is not an object", collection, id)
	}
	return m, nil
}

// Put stores the document, replacing any previous version.
func (s *Store) Put(ctx context.Context, collection, id string, doc map[string]any) error {
	b, err := text.EncodeJSON(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string][]byte)
	}
	s.docs[collection][id] = b
	return nil
}

// Delete removes the document if present.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[collection], id)
	return nil
}

// Exists reports whether the document is present.
func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[collection][id]
	return ok, nil
}

// Len returns the number of documents in a collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[collection])
}

var _ document.Store = (*Store)(nil)
