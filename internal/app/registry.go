package app

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"internportal/internal/domain"
)

// DefaultMonitorInterval is how often the registry re-checks session expiry.
const DefaultMonitorInterval = 5 * time.Minute

// Client bundles the session store and gateway of one dashboard client.
type Client struct {
	Namespace string
	Sessions  *SessionStore
	Gateway   *Gateway

	expired atomic.Bool
}

// TakeExpiredNotice reports, once, that the monitor logged the client out
// because its session expired.
func (c *Client) TakeExpiredNotice() bool {
	return c.expired.Swap(false)
}

// RegistryConfig configures the clients built by a Registry.
type RegistryConfig struct {
	Admin          AdminCredentials
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	// OnExpired, when set, is called after the monitor logs a client out.
	OnExpired func(c *Client)
}

// Registry creates and tracks one Client per namespace over a shared store.
type Registry struct {
	store    domain.KeyValueStore
	resolver *Resolver
	cfg      RegistryConfig

	mu      sync.Mutex
	clients map[string]*Client
}

// NewRegistry creates a registry whose clients persist into store.
func NewRegistry(store domain.KeyValueStore, resolver *Resolver, cfg RegistryConfig) *Registry {
	return &Registry{
		store:    store,
		resolver: resolver,
		cfg:      cfg,
		clients:  make(map[string]*Client),
	}
}

// Client returns the client for ns, creating it on first use.
func (r *Registry) Client(ns string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[ns]; ok {
		return c
	}
	kv := Namespace(r.store, ns)
	c := &Client{
		Namespace: ns,
		Sessions:  NewSessionStore(kv, r.cfg.Admin, r.cfg.SessionTTL),
		Gateway:   NewGateway(r.resolver, kv, r.cfg.RequestTimeout),
	}
	r.clients[ns] = c
	return c
}

// Mode returns the gateway mode shared by all clients.
func (r *Registry) Mode() Mode {
	return r.resolver.Mode()
}

// Len returns the number of tracked clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Monitor re-checks every client's session each interval until ctx is done.
func (r *Registry) Monitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs one expiry check over all clients. Clients logged out by
// expiry get an expired notice; idle clients without a session or pending
// notice are dropped.
func (r *Registry) Sweep(ctx context.Context) {
	if s, ok := r.store.(domain.ExpiredSweeper); ok {
		if err := s.DeleteExpired(ctx); err != nil {
			log.Printf("monitor: delete expired: %v", err)
		}
	}

	r.mu.Lock()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.Unlock()

	for _, c := range clients {
		expired, err := c.Sessions.CheckExpiry(ctx)
		if err != nil {
			log.Printf("monitor: client %s: %v", c.Namespace, err)
			continue
		}
		if expired {
			log.Printf("monitor: session of client %s expired, logged out", c.Namespace)
			c.expired.Store(true)
			if r.cfg.OnExpired != nil {
				r.cfg.OnExpired(c)
			}
			continue
		}
		if !c.Sessions.LoggedIn() && !c.expired.Load() {
			r.mu.Lock()
			delete(r.clients, c.Namespace)
			r.mu.Unlock()
		}
	}
}
