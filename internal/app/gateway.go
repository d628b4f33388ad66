package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"internportal/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultRequestTimeout bounds a single portal call.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultRecommendations is the number of recommendations requested when unspecified.
	DefaultRecommendations = 10

	instrumentationName = "internportal/internal/app"
)

var (
	fallbackCounterOnce sync.Once
	fallbackCounter     metric.Int64Counter
)

func fallbacks() metric.Int64Counter {
	fallbackCounterOnce.Do(func() {
		c, err := otel.Meter(instrumentationName).Int64Counter("gateway.fallbacks",
			metric.WithDescription("Portal calls served by the fallback portal."))
		if err != nil {
			log.Printf("gateway: fallback counter: %v", err)
		}
		fallbackCounter = c
	})
	return fallbackCounter
}

// Gateway dispatches the dashboard operations of one client to the portals
// chosen by the resolver and keeps the client's derived data cache.
type Gateway struct {
	resolver *Resolver
	cache    domain.KeyValueStore
	timeout  time.Duration
	tracer   trace.Tracer
	now      func() time.Time

	generation atomic.Uint64
	// guards the cached applications and allotment; never held across a portal call
	mu         sync.Mutex
	submitting map[string]bool
}

// NewGateway creates a gateway caching derived data in cache.
func NewGateway(resolver *Resolver, cache domain.KeyValueStore, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Gateway{
		resolver: resolver,
		cache:    cache,
		timeout:  timeout,
		tracer:   otel.Tracer(instrumentationName),
		now:      time.Now,

		submitting: make(map[string]bool),
	}
}

// Navigate starts a new request generation. Responses to calls issued under
// an earlier generation are discarded with ErrStaleResponse.
func (g *Gateway) Navigate() uint64 {
	return g.generation.Add(1)
}

// Generation returns the current request generation.
func (g *Gateway) Generation() uint64 {
	return g.generation.Load()
}

// dispatch runs a read against the portals. Results of a generation that
// has since been superseded fail with ErrStaleResponse.
func dispatch[T any](ctx context.Context, g *Gateway, op string, call func(context.Context, domain.Portal) (T, error)) (T, error) {
	return run(ctx, g, op, true, call)
}

// commit runs a mutation against the portals. A mutation the portal accepted
// is returned even when the generation moved on, so callers can record it.
func commit[T any](ctx context.Context, g *Gateway, op string, call func(context.Context, domain.Portal) (T, error)) (T, error) {
	return run(ctx, g, op, false, call)
}

func run[T any](ctx context.Context, g *Gateway, op string, checkStale bool, call func(context.Context, domain.Portal) (T, error)) (T, error) {
	var zero T
	gen := g.generation.Load()

	ctx, span := g.tracer.Start(ctx, "gateway."+op)
	defer span.End()

	primary, fallback := g.resolver.Portals()
	servedBy := "primary"
	v, err := attempt(ctx, g.timeout, primary, call)
	if err != nil && fallback != nil {
		log.Printf("gateway: %s primary failed: %v; serving fallback", op, err)
		if c := fallbacks(); c != nil {
			c.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
		}
		servedBy = "fallback"
		v, err = attempt(ctx, g.timeout, fallback, call)
	}
	span.SetAttributes(
		attribute.String("gateway.served_by", servedBy),
		attribute.Int64("gateway.generation", int64(gen)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	if checkStale && g.generation.Load() != gen {
		span.SetAttributes(attribute.Bool("gateway.stale", true))
		return zero, ErrStaleResponse
	}
	return v, nil
}

func attempt[T any](ctx context.Context, timeout time.Duration, p domain.Portal, call func(context.Context, domain.Portal) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return call(ctx, p)
}

// Candidates lists all candidates.
func (g *Gateway) Candidates(ctx context.Context) ([]domain.Candidate, error) {
	return dispatch(ctx, g, "list_candidates", func(ctx context.Context, p domain.Portal) ([]domain.Candidate, error) {
		return p.ListCandidates(ctx)
	})
}

// Allocations lists all allocations.
func (g *Gateway) Allocations(ctx context.Context) ([]domain.Allocation, error) {
	return dispatch(ctx, g, "list_allocations", func(ctx context.Context, p domain.Portal) ([]domain.Allocation, error) {
		return p.ListAllocations(ctx)
	})
}

// DashboardStats returns the admin summary.
func (g *Gateway) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return dispatch(ctx, g, "dashboard_stats", func(ctx context.Context, p domain.Portal) (*domain.DashboardStats, error) {
		return p.DashboardStats(ctx)
	})
}

// RunAllocation runs the allocation algorithm.
func (g *Gateway) RunAllocation(ctx context.Context) (*domain.AllocationRun, error) {
	return commit(ctx, g, "run_allocation", func(ctx context.Context, p domain.Portal) (*domain.AllocationRun, error) {
		return p.RunAllocation(ctx)
	})
}

// Recommendations fetches up to n recommendations for candidateID and caches
// them as the client's current recommendations.
func (g *Gateway) Recommendations(ctx context.Context, candidateID string, n int) ([]domain.Recommendation, error) {
	if !ValidCandidateID(candidateID) {
		return nil, ErrInvalidCandidateID
	}
	if n <= 0 {
		n = DefaultRecommendations
	}
	recs, err := dispatch(ctx, g, "recommendations", func(ctx context.Context, p domain.Portal) ([]domain.Recommendation, error) {
		return p.Recommendations(ctx, candidateID, n)
	})
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	if err := g.store(ctx, domain.CachedRecommendationsKey, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CachedRecommendations returns the recommendations last fetched by the client.
func (g *Gateway) CachedRecommendations(ctx context.Context) ([]domain.Recommendation, error) {
	return load[[]domain.Recommendation](ctx, g, domain.CachedRecommendationsKey)
}

// SubmitApplication applies candidateID to the recommendation at index of
// the cached recommendations and records the application locally.
func (g *Gateway) SubmitApplication(ctx context.Context, candidateID string, index int) (*domain.Application, error) {
	recs, err := g.CachedRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(recs) {
		return nil, ErrRecommendationNotFound
	}
	rec := recs[index]
	key := rec.CompanyName + "\x00" + rec.JobTitle

	g.mu.Lock()
	apps, err := g.cachedApplications(ctx)
	if err == nil && (applied(apps, rec) || g.submitting[key]) {
		err = ErrAlreadyApplied
	}
	if err != nil {
		g.mu.Unlock()
		return nil, err
	}
	g.submitting[key] = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.submitting, key)
		g.mu.Unlock()
	}()

	application := domain.Application{
		CandidateID: candidateID,
		CompanyName: rec.CompanyName,
		JobTitle:    rec.JobTitle,
		MatchScore:  rec.MatchScore,
		AppliedAt:   g.now().UTC(),
		Status:      "pending",
	}
	receipt, err := commit(ctx, g, "submit_application", func(ctx context.Context, p domain.Portal) (*domain.ApplicationReceipt, error) {
		return p.SubmitApplication(ctx, application)
	})
	if err != nil {
		return nil, err
	}
	if receipt != nil {
		application.ApplicationID = receipt.ApplicationID
		if receipt.Status != "" {
			application.Status = receipt.Status
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	apps, err = g.cachedApplications(ctx)
	if err != nil {
		return nil, err
	}
	apps = append(apps, application)
	if err := g.store(ctx, domain.CachedApplicationsKey, apps); err != nil {
		return nil, err
	}
	return &application, nil
}

func applied(apps []domain.Application, rec domain.Recommendation) bool {
	for _, a := range apps {
		if a.CompanyName == rec.CompanyName && a.JobTitle == rec.JobTitle {
			return true
		}
	}
	return false
}

// Applications returns the client's applications. Locally recorded
// applications take precedence over what the portal reports.
func (g *Gateway) Applications(ctx context.Context, candidateID string) ([]domain.Application, error) {
	g.mu.Lock()
	apps, err := g.cachedApplications(ctx)
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if len(apps) > 0 {
		return apps, nil
	}

	fetched, err := dispatch(ctx, g, "list_applications", func(ctx context.Context, p domain.Portal) ([]domain.Application, error) {
		return p.Applications(ctx, candidateID)
	})
	if err != nil {
		return nil, err
	}
	if fetched == nil {
		fetched = []domain.Application{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	// an application submitted during the fetch wins
	if apps, err = g.cachedApplications(ctx); err != nil || len(apps) > 0 {
		return apps, err
	}
	if len(fetched) > 0 {
		if err := g.store(ctx, domain.CachedApplicationsKey, fetched); err != nil {
			return nil, err
		}
	}
	return fetched, nil
}

// AllotmentStatus returns the allotment of candidateID, or nil when nothing
// has been allotted yet. A locally confirmed allotment is kept over a refetch.
func (g *Gateway) AllotmentStatus(ctx context.Context, candidateID string) (*domain.Allotment, error) {
	g.mu.Lock()
	cached, err := g.cachedAllotment(ctx)
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if cached.Confirmed() {
		return cached, nil
	}

	allotment, err := dispatch(ctx, g, "allotment_status", func(ctx context.Context, p domain.Portal) (*domain.Allotment, error) {
		return p.AllotmentStatus(ctx, candidateID)
	})
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if cached, err = g.cachedAllotment(ctx); err != nil || cached.Confirmed() {
		return cached, err
	}
	if allotment == nil {
		if err := g.cache.Delete(ctx, domain.CachedAllotmentKey); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := g.store(ctx, domain.CachedAllotmentKey, allotment); err != nil {
		return nil, err
	}
	return allotment, nil
}

// ConfirmAllotment accepts the client's current allotment.
func (g *Gateway) ConfirmAllotment(ctx context.Context) (*domain.Allotment, error) {
	g.mu.Lock()
	cached, err := g.cachedAllotment(ctx)
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, ErrNoAllotment
	}
	if cached.Confirmed() {
		return cached, nil
	}

	confirmed, err := commit(ctx, g, "confirm_allotment", func(ctx context.Context, p domain.Portal) (*domain.Allotment, error) {
		return p.ConfirmAllotment(ctx, *cached)
	})
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store(ctx, domain.CachedAllotmentKey, confirmed); err != nil {
		return nil, err
	}
	return confirmed, nil
}

func (g *Gateway) cachedApplications(ctx context.Context) ([]domain.Application, error) {
	return load[[]domain.Application](ctx, g, domain.CachedApplicationsKey)
}

func (g *Gateway) cachedAllotment(ctx context.Context) (*domain.Allotment, error) {
	return load[*domain.Allotment](ctx, g, domain.CachedAllotmentKey)
}

// load decodes the cached key. Missing and malformed entries read as the
// zero value.
func load[T any](ctx context.Context, g *Gateway, key string) (T, error) {
	var v T
	raw, err := g.cache.Get(ctx, key)
	if err != nil {
		return v, fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("gateway: discarding malformed %s: %v", key, err)
		_ = g.cache.Delete(ctx, key)
		var zero T
		return zero, nil
	}
	return v, nil
}

func (g *Gateway) store(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := g.cache.Set(ctx, key, raw, 0); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
