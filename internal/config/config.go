// Package config loads process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"internportal/internal/adapter/remote"
	"internportal/internal/app"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config is the process configuration.
type Config struct {
	Addr   string `env:"ADDR" envDefault:":8080"`
	WebDir string `env:"WEB_DIR" envDefault:"web"`

	PrimaryAPIURL  string        `env:"PRIMARY_API_URL"`
	LegacyAPIURL   string        `env:"LEGACY_API_URL"`
	GatewayMode    string        `env:"GATEWAY_MODE"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	SessionTTL      time.Duration `env:"SESSION_TTL"`
	MonitorInterval time.Duration `env:"MONITOR_INTERVAL"`

	StoreBackend  string `env:"STORE_BACKEND" envDefault:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"internportal.db"`

	AdminUsername     string `env:"ADMIN_USERNAME"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	ClientSigningKey  string `env:"CLIENT_SIGNING_KEY"`

	OIDCIssuer       string   `env:"OIDC_ISSUER"`
	OIDCClientID     string   `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string   `env:"OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string   `env:"OIDC_REDIRECT_URL"`
	OIDCAdminEmails  []string `env:"OIDC_ADMIN_EMAILS" envSeparator:","`

	OTELEndpoint string `env:"OTEL_ENDPOINT"`
	OTELEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Defaults returns the configuration used for variables left unset. Values
// owned by other packages come from their exported defaults.
func Defaults() Config {
	return Config{
		PrimaryAPIURL:   remote.DefaultPrimaryURL,
		LegacyAPIURL:    remote.DefaultLegacyURL,
		GatewayMode:     string(app.ModeAuto),
		RequestTimeout:  app.DefaultRequestTimeout,
		SessionTTL:      app.DefaultSessionTTL,
		MonitorInterval: app.DefaultMonitorInterval,
		AdminUsername:   app.DefaultAdminUsername,
	}
}

// Load parses the environment over Defaults and validates the result.
func Load() (Config, error) {
	cfg := Defaults()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.GatewayMode {
	case string(app.ModeAuto), string(app.ModeRemote), string(app.ModeFallback):
	default:
		return fmt.Errorf("GATEWAY_MODE: unknown mode %q", c.GatewayMode)
	}
	switch c.StoreBackend {
	case BackendMemory, BackendRedis, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND: unknown backend %q", c.StoreBackend)
	}
	if c.RequestTimeout <= 0 || c.SessionTTL <= 0 || c.MonitorInterval <= 0 {
		return errors.New("REQUEST_TIMEOUT, SESSION_TTL and MONITOR_INTERVAL must be positive")
	}
	if c.OIDCIssuer != "" && (c.OIDCClientID == "" || c.OIDCRedirectURL == "") {
		return errors.New("OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required when OIDC_ISSUER is set")
	}
	return nil
}
