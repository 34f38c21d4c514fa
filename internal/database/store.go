// Package database implements the file-backed persistence engine on SQLite.
//
// The store is single-writer: one engine owns the connection for its
// lifetime, and callers serialize statistics-affecting writes behind the
// session. Tables are materialized from runtime-derived schemas (see the
// schema package); nested entity values live in opaque JSON columns and are
// decoded on lookup, never joined.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/schema"
)

// Store wraps SQLite access for the reward catalog and player records.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the SQLite database file. Calling it on an existing
// file is a no-op beyond opening the connection.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// One connection for the engine's lifetime: SQLite has a single writer
	// anyway, and this keeps concurrent build stages from tripping over
	// SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Ping verifies the connection, for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Remove deletes the backing file ahead of a destructive rebuild. A missing
// file is fine. A file held by another process surfaces as
// domain.ErrResourceBusy so callers can tell the operator to release it,
// rather than a generic I/O failure.
func Remove(path string) error {
	return classifyRemove(os.Remove(path), path)
}

// classifyRemove maps the os.Remove outcome to the store's failure modes.
// Split out because a genuinely held file cannot be provoked portably in
// tests (and not at all when running as root).
func classifyRemove(err error, path string) error {
	switch {
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return nil
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s is in use", domain.ErrResourceBusy, path)
	default:
		return fmt.Errorf("remove store: %w", err)
	}
}

// Materialize creates every derived table. Idempotent: existing tables are
// left untouched.
func (s *Store) Materialize(ctx context.Context, schemas []schema.TableSchema) error {
	for _, table := range schemas {
		if _, err := s.db.ExecContext(ctx, table.CreateStatement()); err != nil {
			return fmt.Errorf("materialize %s: %w", table.Name, err)
		}
	}
	return nil
}

// exists runs a natural-key existence probe.
func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}
