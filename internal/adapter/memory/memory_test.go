package memory

import (
	"context"
	"testing"
	"time"
)

func TestStoreSetGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Missing key
	v, err := s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil for missing key, got %q", v)
	}

	if err := s.Set(ctx, "k", []byte("v1"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _ = s.Get(ctx, "k")
	if string(v) != "v1" {
		t.Errorf("expected v1, got %q", v)
	}

	// Overwrite
	_ = s.Set(ctx, "k", []byte("v2"), 0)
	v, _ = s.Get(ctx, "k")
	if string(v) != "v2" {
		t.Errorf("expected v2, got %q", v)
	}

	// Returned slice is a copy
	v[0] = 'x'
	v2, _ := s.Get(ctx, "k")
	if string(v2) != "v2" {
		t.Errorf("stored value mutated through returned slice: %q", v2)
	}

	if err := s.Delete(ctx, "k", "unknown"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	v, _ = s.Get(ctx, "k")
	if v != nil {
		t.Errorf("expected nil after delete, got %q", v)
	}
}

func TestStoreExpiry(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "short", []byte("a"), time.Minute)
	_ = s.Set(ctx, "forever", []byte("b"), 0)

	now = now.Add(30 * time.Second)
	if v, _ := s.Get(ctx, "short"); string(v) != "a" {
		t.Errorf("expected live value before ttl, got %q", v)
	}

	now = now.Add(time.Minute)
	if v, _ := s.Get(ctx, "short"); v != nil {
		t.Errorf("expected nil after ttl, got %q", v)
	}
	if v, _ := s.Get(ctx, "forever"); string(v) != "b" {
		t.Errorf("expected value without ttl to survive, got %q", v)
	}
}

func TestStoreDeleteExpired(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "a", []byte("1"), time.Second)
	_ = s.Set(ctx, "b", []byte("2"), time.Hour)

	now = now.Add(time.Minute)
	if err := s.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}

	keys := s.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("expected only b to remain, got %v", keys)
	}
}
