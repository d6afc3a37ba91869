// Package sqlitestore provides a SQLite implementation of document.Store.
// Documents are kept as JSON text in a single table keyed by collection and
// ID.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/document"
	"github.com/reoring/gorecord/text"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// Open creates a new SQLite database connection and creates the documents
// table when missing.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	d := &DB{DB: db}
	if err := d.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Migrate creates the documents table.
func (db *DB) Migrate() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			body TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`)
	if err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// Store implements document.Store using SQLite.
type Store struct {
	db  *DB
	now func() time.Time
}

// NewStore creates a new document store.
func NewStore(db *DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get retrieves a document by collection and ID.
func (s *Store) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	v, err := text.DecodeJSON([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode document: %s/%s is not an object", collection, id)
	}
	return m, nil
}

// Put inserts or replaces a document.
func (s *Store) Put(ctx context.Context, collection, id string, doc map[string]any) error {
	body, err := text.EncodeJSON(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`, collection, id, string(body), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	gorecord.Logger().Debug().Str("collection", collection).Str("id", id).Int("bytes", len(body)).Msg("sqlite document written")
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Exists reports whether a document is stored.
func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("exists document: %w", err)
	}
	return n > 0, nil
}

// IDs lists the document IDs of a collection in ascending order.
func (s *Store) IDs(ctx context.Context, collection string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM documents WHERE collection = ? ORDER BY id`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ document.Store = (*Store)(nil)
