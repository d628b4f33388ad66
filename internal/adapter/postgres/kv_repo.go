package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"internportal/internal/domain"

	"github.com/lib/pq"
)

var _ domain.KeyValueStore = (*DB)(nil)
var _ domain.ExpiredSweeper = (*DB)(nil)

// Get retrieves the live value stored under key.
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := d.sql.QueryRowContext(ctx,
		"SELECT value FROM kv_entries WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)",
		key, d.now(),
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
func (d *DB) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := d.now()
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(ttl), Valid: true}
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, expires_at, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`,
		key, value, expiresAt, now,
	)
	return err
}

// Delete deletes keys.
func (d *DB) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := d.sql.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ANY($1)", pq.Array(keys))
	return err
}

// DeleteExpired deletes all expired entries.
func (d *DB) DeleteExpired(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at < $1", d.now())
	return err
}
