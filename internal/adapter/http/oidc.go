package adapthttp

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig configures single sign-on for administrators.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
	// AdminEmails lists the verified emails granted the admin role.
	AdminEmails []string
}

// NewOIDCConfig discovers the issuer. An empty issuer disables SSO.
func NewOIDCConfig(ctx context.Context, issuer, clientID, clientSecret, redirectURL string, adminEmails []string) (OIDCConfig, error) {
	if issuer == "" {
		return OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDCConfig{}, fmt.Errorf("oidc provider: %w", err)
	}
	return OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		AdminEmails: adminEmails,
	}, nil
}

func (c OIDCConfig) isAdmin(email string) bool {
	for _, e := range c.AdminEmails {
		if email != "" && strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}
