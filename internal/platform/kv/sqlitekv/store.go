// Package sqlitekv stores collection documents in an embedded SQLite file.
package sqlitekv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

var _ kv.Store = (*Store)(nil)

const schema = `CREATE TABLE IF NOT EXISTS collection_entries (
	storage_key TEXT PRIMARY KEY,
	value       BLOB NOT NULL,
	updated_at  TEXT NOT NULL
)`

// Store implements kv.Store on a single SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating when needed) the database at path and applies the schema.
// Accepts a plain file path, a "file:" URI or ":memory:".
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	dsn := path
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM collection_entries WHERE storage_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collection_entries (storage_key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(storage_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM collection_entries WHERE storage_key = ?`, key)
	return err
}

func (s *Store) Backend() string { return "sqlite" }

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("sqlite kv store not configured")
	}
	return nil
}
