package app

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"
	"time"

	"internportal/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultSessionTTL is how long a session lives after its last authorized use.
	DefaultSessionTTL = 24 * time.Hour
	// ExpiredSessionRetention is how long an expired session record is kept
	// so that a later read reports it as expired rather than absent.
	ExpiredSessionRetention = time.Hour
	// DefaultAdminUsername is the built-in admin identity.
	DefaultAdminUsername = "admin"
	// DefaultAdminPassword is the built-in admin secret, used when no hash is configured.
	DefaultAdminPassword = "admin123"
)

var candidateIDPattern = regexp.MustCompile(`^\d{3,10}$`)

// ValidCandidateID reports whether id has the numeric 3-10 digit shape.
func ValidCandidateID(id string) bool {
	return candidateIDPattern.MatchString(id)
}

// AdminCredentials holds the single admin identity and its bcrypt hash.
type AdminCredentials struct {
	Username     string
	PasswordHash []byte
}

// NewAdminCredentials builds admin credentials. An empty hash falls back to
// the built-in admin secret.
func NewAdminCredentials(username, passwordHash string) (AdminCredentials, error) {
	if username == "" {
		username = DefaultAdminUsername
	}
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return AdminCredentials{}, fmt.Errorf("admin password hash: %w", err)
		}
		return AdminCredentials{Username: username, PasswordHash: []byte(passwordHash)}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return AdminCredentials{}, err
	}
	return AdminCredentials{Username: username, PasswordHash: hash}, nil
}

// Verify checks an identity/secret pair against the admin credentials.
func (a AdminCredentials) Verify(identity, secret string) bool {
	if len(a.PasswordHash) == 0 || secret == "" {
		return false
	}
	userOK := ConstantTimeCompare(identity, a.Username)
	passOK := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(secret)) == nil
	return userOK && passOK
}

// AdminIdentity is the identity stored for password-authenticated admins.
func AdminIdentity() domain.Identity {
	return domain.Identity{ID: "admin", Name: "System Administrator", Type: string(domain.RoleAdmin)}
}

// CandidateIdentity is the identity stored for a candidate login.
func CandidateIdentity(id string) domain.Identity {
	return domain.Identity{ID: id, Name: "Candidate " + id, Type: string(domain.RoleCandidate)}
}

// SessionStore owns the single session of one client and the client's
// cached derived data.
type SessionStore struct {
	kv    domain.KeyValueStore
	ttl   time.Duration
	admin AdminCredentials
	now   func() time.Time

	mu      sync.Mutex
	current *domain.Session
}

// NewSessionStore creates a session store persisting into kv.
func NewSessionStore(kv domain.KeyValueStore, admin AdminCredentials, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		kv:    kv,
		ttl:   ttl,
		admin: admin,
		now:   time.Now,
	}
}

// Login authenticates identity for role and saves a fresh session.
func (s *SessionStore) Login(ctx context.Context, identity, credential string, role domain.Role) (*domain.Session, error) {
	switch role {
	case domain.RoleCandidate:
		if !ValidCandidateID(identity) {
			return nil, invalidCredentials("invalid candidate ID format")
		}
		return s.Save(ctx, CandidateIdentity(identity), role)
	case domain.RoleAdmin:
		if !s.admin.Verify(identity, credential) {
			return nil, invalidCredentials("invalid admin credentials")
		}
		return s.Save(ctx, AdminIdentity(), role)
	}
	return nil, invalidCredentials("invalid role specified")
}

// LoginWithIdentity saves a session for an identity authenticated elsewhere
// (e.g. via SSO).
func (s *SessionStore) LoginWithIdentity(ctx context.Context, identity domain.Identity, role domain.Role) (*domain.Session, error) {
	if !role.Valid() || identity.ID == "" {
		return nil, invalidCredentials("invalid identity")
	}
	return s.Save(ctx, identity, role)
}

// Save writes a session expiring TTL from now, replacing any prior session.
func (s *SessionStore) Save(ctx context.Context, identity domain.Identity, role domain.Role) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		User:      identity,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, domain.SessionKey, raw, s.ttl+ExpiredSessionRetention); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	ret := *sess
	return &ret, nil
}

// Restore loads the persisted session. It returns ErrSessionNotFound when
// nothing (or something unreadable) is stored and ErrSessionExpired when the
// stored session has expired; both leave the store logged out.
func (s *SessionStore) Restore(ctx context.Context) (*domain.Session, error) {
	raw, err := s.kv.Get(ctx, domain.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if raw == nil {
		s.forget()
		return nil, ErrSessionNotFound
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil || !sess.Role.Valid() || sess.ExpiresAt.IsZero() {
		log.Printf("session: discarding malformed session record")
		s.clear(ctx)
		return nil, ErrSessionNotFound
	}

	if s.now().After(sess.ExpiresAt) {
		s.clear(ctx)
		return nil, ErrSessionExpired
	}

	s.mu.Lock()
	cur := sess
	s.current = &cur
	s.mu.Unlock()
	return &sess, nil
}

// Authorize restores the session and checks it grants required. An empty
// required role accepts any session. On success the session expiry slides
// forward and the refreshed session is returned.
func (s *SessionStore) Authorize(ctx context.Context, required domain.Role) (*domain.Session, error) {
	sess, err := s.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if required != "" && sess.Role != required {
		return nil, ErrForbidden
	}
	return s.Save(ctx, sess.User, sess.Role)
}

// IsAuthorized reports whether the current session grants required. It
// fails closed on any error.
func (s *SessionStore) IsAuthorized(ctx context.Context, required domain.Role) bool {
	_, err := s.Authorize(ctx, required)
	return err == nil
}

// Logout deletes the session and all cached derived data.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.forget()
	keys := append([]string{domain.SessionKey}, domain.CachedDataKeys...)
	if err := s.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// LoggedIn reports whether the store last observed a live session.
func (s *SessionStore) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CheckExpiry re-reads the persisted session. It returns true when a session
// the store had observed is now gone, after clearing the cached data.
func (s *SessionStore) CheckExpiry(ctx context.Context) (bool, error) {
	if !s.LoggedIn() {
		return false, nil
	}
	_, err := s.Restore(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
		return false, err
	}
	if err := s.Logout(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (s *SessionStore) forget() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *SessionStore) clear(ctx context.Context) {
	s.forget()
	_ = s.kv.Delete(ctx, domain.SessionKey)
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
