package postgres

import (
	"context"
	"os"
	"testing"
	"time"
)

// Requires a reachable database; set POSTGRES_TEST_URL to run.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	d, err := Open(connStr)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		_, _ = d.sql.Exec("DELETE FROM kv_entries WHERE key LIKE 'test:%'")
		_ = d.Close()
	})
	return d
}

func TestKVRoundTrip(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if v, err := d.Get(ctx, "test:missing"); err != nil || v != nil {
		t.Fatalf("expected nil, nil for missing key, got %q, %v", v, err)
	}
	if err := d.Set(ctx, "test:a", []byte("one"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := d.Set(ctx, "test:a", []byte("two"), 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err := d.Get(ctx, "test:a")
	if err != nil || string(v) != "two" {
		t.Fatalf("expected two, got %q, %v", v, err)
	}

	if err := d.Delete(ctx, "test:a", "test:missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if v, _ := d.Get(ctx, "test:a"); v != nil {
		t.Fatalf("expected deleted, got %q", v)
	}
}

func TestKVExpiry(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	now := time.Now()
	d.now = func() time.Time { return now }
	if err := d.Set(ctx, "test:ttl", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Get(ctx, "test:ttl"); v == nil {
		t.Fatal("expected live value")
	}

	now = now.Add(2 * time.Minute)
	if v, _ := d.Get(ctx, "test:ttl"); v != nil {
		t.Fatalf("expected expired value hidden, got %q", v)
	}
	if err := d.DeleteExpired(ctx); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	var n int
	if err := d.sql.QueryRow("SELECT count(*) FROM kv_entries WHERE key = 'test:ttl'").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected expired row swept, %d remain", n)
	}
}
