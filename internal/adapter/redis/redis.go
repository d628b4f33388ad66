// Package redis implements the key-value store on Redis.
package redis

import (
	"context"
	"errors"
	"time"

	"internportal/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Store keeps entries as plain Redis strings under a key prefix. Expiry is
// delegated to Redis TTLs.
type Store struct {
	client *goredis.Client
	prefix string
}

var _ domain.KeyValueStore = (*Store)(nil)

// Open connects to Redis and pings it.
func Open(addr, password string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return New(client), nil
}

// New wraps an existing client.
func New(client *goredis.Client) *Store {
	return &Store{
		client: client,
		prefix: "portal:",
	}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores value under key with the given ttl.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, s.key(key), value, ttl).Err()
}

// Delete removes keys.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	return s.client.Del(ctx, full...).Err()
}
