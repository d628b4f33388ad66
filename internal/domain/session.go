// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Role gates access to dashboard features.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleAdmin
}

// Identity is the authenticated subject of a session.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Session represents the single authenticated session of a client.
type Session struct {
	User      Identity  `json:"user"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Keys of the client-scoped persisted state.
const (
	SessionKey               = "pm_internship_session"
	CachedRecommendationsKey = "cached_recommendations"
	CachedApplicationsKey    = "cached_applications"
	CachedAllotmentKey       = "cached_allotment"
)

// CachedDataKeys lists the derived data removed on logout.
var CachedDataKeys = []string{
	CachedRecommendationsKey,
	CachedApplicationsKey,
	CachedAllotmentKey,
}

// KeyValueStore is the port for persisted client state.
//
// Get returns nil, nil for a missing or expired key. A zero ttl stores the
// value without expiry.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ExpiredSweeper is implemented by stores that keep expired rows until
// they are swept.
type ExpiredSweeper interface {
	DeleteExpired(ctx context.Context) error
}
