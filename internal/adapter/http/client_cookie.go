package adapthttp

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	clientCookieName = "portal_client"
	clientCookieTTL  = 30 * 24 * time.Hour
	clientIssuer     = "internportal"
)

// ClientCookies issues and verifies the signed cookie that identifies a
// browser's client namespace.
type ClientCookies struct {
	key []byte
	now func() time.Time
}

// NewClientCookies creates a cookie signer. The key must be at least 32 bytes.
func NewClientCookies(key []byte) (*ClientCookies, error) {
	if len(key) < 32 {
		return nil, errors.New("client signing key must be at least 32 bytes")
	}
	return &ClientCookies{key: key, now: time.Now}, nil
}

// Issue creates a new client namespace and its signed token.
func (c *ClientCookies) Issue() (namespace, token string, err error) {
	namespace = uuid.NewString()
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    clientIssuer,
		Subject:   namespace,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(clientCookieTTL)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", "", fmt.Errorf("sign client token: %w", err)
	}
	return namespace, token, nil
}

// Parse verifies token and returns its client namespace.
func (c *ClientCookies) Parse(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(clientIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("client namespace: %w", err)
	}
	return id.String(), nil
}
