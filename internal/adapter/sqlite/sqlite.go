// Package sqlite implements the key-value store on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"internportal/internal/domain"

	_ "modernc.org/sqlite"
)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Store implements domain.KeyValueStore over SQLite.
type Store struct {
	sql *sql.DB
	now func() time.Time
}

var _ domain.KeyValueStore = (*Store)(nil)
var _ domain.ExpiredSweeper = (*Store)(nil)

// Open opens the SQLite file at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	s := &Store{sql: db, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"CREATE TABLE IF NOT EXISTS kv_entries (key TEXT PRIMARY KEY, value BLOB NOT NULL, expires_at INTEGER, updated_at INTEGER NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_kv_entries_expires_at ON kv_entries(expires_at);",
	}
	for _, stmt := range stmts {
		if _, err := s.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Get retrieves the live value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.sql.QueryRowContext(ctx,
		"SELECT value FROM kv_entries WHERE key = ?1 AND (expires_at IS NULL OR expires_at > ?2)",
		key, toMillis(s.now()),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set upserts value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: toMillis(now.Add(ttl)), Valid: true}
	}
	_, err := s.sql.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, expires_at, updated_at) VALUES (?1, ?2, ?3, ?4)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		key, value, expiresAt, toMillis(now),
	)
	return err
}

// Delete deletes keys in one transaction.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ?1", k); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DeleteExpired deletes all expired entries.
func (s *Store) DeleteExpired(ctx context.Context) error {
	_, err := s.sql.ExecContext(ctx,
		"DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at <= ?1",
		toMillis(s.now()),
	)
	return err
}
