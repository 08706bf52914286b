package patterncache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const upsertSQL = `INSERT INTO patterns (number, pattern, entry_id, updated_at) VALUES (?, ?, ?, ?)
	ON CONFLICT(number) DO UPDATE SET
	  pattern = excluded.pattern,
	  entry_id = excluded.entry_id,
	  updated_at = excluded.updated_at`

// SQLiteStore is a Store over a SQLite database file. Each row carries a
// UUIDv7 entry id and the time it was last written.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	// Single connection: concurrent writers queue here instead of on SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, n int64) (string, bool, error) {
	var pattern string
	err := s.db.QueryRowContext(ctx, "SELECT pattern FROM patterns WHERE number = ?", n).Scan(&pattern)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap(err)
	}
	return pattern, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, n int64, pattern string) error {
	_, err := s.db.ExecContext(ctx, upsertSQL, n, pattern, generateUUID(), now())
	return s.wrap(err)
}

// PutBatch upserts entries in one transaction.
func (s *SQLiteStore) PutBatch(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.wrap(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return s.wrap(err)
	}
	defer stmt.Close()

	at := now()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Number, e.Pattern, generateUUID(), at); err != nil {
			return s.wrap(err)
		}
	}
	return s.wrap(tx.Commit())
}

func (s *SQLiteStore) Delete(ctx context.Context, n int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM patterns WHERE number = ?", n)
	return s.wrap(err)
}

func (s *SQLiteStore) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT number, pattern FROM patterns ORDER BY number DESC")
	if err != nil {
		return nil, s.wrap(err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Number, &e.Pattern); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EntryID returns the id of the row stored for n.
func (s *SQLiteStore) EntryID(ctx context.Context, n int64) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT entry_id FROM patterns WHERE number = ?", n).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap(err)
	}
	return id, true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// wrap maps the closed-database error onto ErrClosed.
func (s *SQLiteStore) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || err.Error() == "sql: database is closed" {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return fmt.Errorf("sqlite cache: %w", err)
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// generateUUID returns a UUIDv7 string, falling back to v4.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
