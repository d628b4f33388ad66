package config

import (
	"strings"
	"testing"
	"time"

	"internportal/internal/adapter/remote"
	"internportal/internal/app"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Addr)
	}
	if cfg.GatewayMode != "auto" || cfg.StoreBackend != BackendMemory {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestTimeout != 10*time.Second || cfg.SessionTTL != 24*time.Hour || cfg.MonitorInterval != 5*time.Minute {
		t.Errorf("unexpected durations %v %v %v", cfg.RequestTimeout, cfg.SessionTTL, cfg.MonitorInterval)
	}
	if cfg.PrimaryAPIURL != remote.DefaultPrimaryURL || cfg.LegacyAPIURL != remote.DefaultLegacyURL {
		t.Errorf("unexpected urls %q %q", cfg.PrimaryAPIURL, cfg.LegacyAPIURL)
	}
	if cfg.SessionTTL != app.DefaultSessionTTL || cfg.AdminUsername != app.DefaultAdminUsername {
		t.Errorf("defaults drifted from app: %v %q", cfg.SessionTTL, cfg.AdminUsername)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GATEWAY_MODE", "fallback")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("OIDC_ADMIN_EMAILS", "a@example.com,b@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GatewayMode != "fallback" || cfg.RequestTimeout != 2*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.OIDCAdminEmails) != 2 || cfg.OIDCAdminEmails[1] != "b@example.com" {
		t.Errorf("unexpected admin emails %v", cfg.OIDCAdminEmails)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad duration", map[string]string{"SESSION_TTL": "forever"}, "parse env:"},
		{"bad mode", map[string]string{"GATEWAY_MODE": "offline"}, "GATEWAY_MODE"},
		{"bad backend", map[string]string{"STORE_BACKEND": "etcd"}, "STORE_BACKEND"},
		{"postgres without url", map[string]string{"STORE_BACKEND": "postgres"}, "DATABASE_URL"},
		{"oidc without client", map[string]string{"OIDC_ISSUER": "https://id.example.com"}, "OIDC_CLIENT_ID"},
		{"zero timeout", map[string]string{"REQUEST_TIMEOUT": "0s"}, "must be positive"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}
