package app

import (
	"context"
	"time"

	"internportal/internal/domain"
)

type namespacedStore struct {
	base   domain.KeyValueStore
	prefix string
}

// Namespace scopes every key of base under ns.
func Namespace(base domain.KeyValueStore, ns string) domain.KeyValueStore {
	return &namespacedStore{base: base, prefix: "client:" + ns + ":"}
}

func (n *namespacedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return n.base.Get(ctx, n.prefix+key)
}

func (n *namespacedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return n.base.Set(ctx, n.prefix+key, value, ttl)
}

func (n *namespacedStore) Delete(ctx context.Context, keys ...string) error {
	scoped := make([]string, len(keys))
	for i, k := range keys {
		scoped[i] = n.prefix + k
	}
	return n.base.Delete(ctx, scoped...)
}
