package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "internportal/internal/adapter/http"
	"internportal/internal/adapter/fallback"
	"internportal/internal/adapter/memory"
	"internportal/internal/adapter/postgres"
	"internportal/internal/adapter/redis"
	"internportal/internal/adapter/remote"
	"internportal/internal/adapter/sqlite"
	"internportal/internal/app"
	"internportal/internal/config"
	"internportal/internal/domain"
	"internportal/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "internportal", cfg.OTELEndpoint, cfg.OTELEnabled)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	store, closer, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	defer func() { _ = closer.Close() }()

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	resolver, err := app.NewResolver(app.Mode(cfg.GatewayMode),
		remote.New(cfg.PrimaryAPIURL, cfg.LegacyAPIURL, httpClient),
		fallback.New())
	if err != nil {
		log.Fatalf("resolver: %v", err)
	}

	admin, err := app.NewAdminCredentials(cfg.AdminUsername, cfg.AdminPasswordHash)
	if err != nil {
		log.Fatalf("admin credentials: %v", err)
	}
	if cfg.AdminPasswordHash == "" {
		log.Printf("ADMIN_PASSWORD_HASH not set, using the built-in admin password")
	}

	registry := app.NewRegistry(store, resolver, app.RegistryConfig{
		Admin:          admin,
		SessionTTL:     cfg.SessionTTL,
		RequestTimeout: cfg.RequestTimeout,
	})
	go registry.Monitor(ctx, cfg.MonitorInterval)

	signingKey := []byte(cfg.ClientSigningKey)
	if len(signingKey) == 0 {
		signingKey = []byte(randomKey())
		log.Printf("CLIENT_SIGNING_KEY not set, client cookies will not survive a restart")
	}
	cookies, err := adapthttp.NewClientCookies(signingKey)
	if err != nil {
		log.Fatalf("client cookies: %v", err)
	}

	oidcConfig, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDCIssuer, cfg.OIDCClientID,
		cfg.OIDCClientSecret, cfg.OIDCRedirectURL, cfg.OIDCAdminEmails)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	h := adapthttp.New(registry, cookies, cfg.WebDir).WithOIDC(oidcConfig).Handler()
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s (gateway mode %s, store %s)", cfg.Addr, cfg.GatewayMode, cfg.StoreBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStore(cfg config.Config) (domain.KeyValueStore, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		s, err := redis.Open(cfg.RedisAddr, cfg.RedisPassword)
		return s, s, err
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		return db, db, err
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		return s, s, err
	}
	return memory.New(), closerFunc(func() error { return nil }), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func randomKey() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
