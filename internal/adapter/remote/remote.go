// Package remote implements domain.Portal against the allocation service's
// HTTP APIs: the primary /api host and the legacy recommendation host.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"internportal/internal/domain"
)

const (
	// DefaultPrimaryURL is the base of the primary /api endpoints.
	DefaultPrimaryURL = "http://192.168.0.119:5000/api"
	// DefaultLegacyURL is the base of the legacy recommendation endpoints.
	DefaultLegacyURL = "http://192.168.0.119:5000"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.URL, e.StatusCode)
}

// Client is a domain.Portal backed by the remote service.
type Client struct {
	http       *http.Client
	primaryURL string
	legacyURL  string

	mu  sync.Mutex
	rnd *rand.Rand
}

var _ domain.Portal = (*Client)(nil)

// New creates a remote portal. A nil httpClient uses http.DefaultClient.
func New(primaryURL, legacyURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	seed := uint64(time.Now().UnixNano())
	return &Client{
		http:       httpClient,
		primaryURL: strings.TrimRight(primaryURL, "/"),
		legacyURL:  strings.TrimRight(legacyURL, "/"),
		rnd:        rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, dst any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, URL: rawURL, StatusCode: resp.StatusCode}
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

// ListCandidates calls GET /interns.
func (c *Client) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	var out []domain.Candidate
	if err := c.do(ctx, http.MethodGet, c.primaryURL+"/interns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type allocationWire struct {
	domain.Allocation
	Scores *struct {
		OverallMatch float64 `json:"overall_match"`
	} `json:"scores"`
}

// ListAllocations calls GET /allocations.
func (c *Client) ListAllocations(ctx context.Context) ([]domain.Allocation, error) {
	var wire []allocationWire
	if err := c.do(ctx, http.MethodGet, c.primaryURL+"/allocations", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Allocation, len(wire))
	for i, w := range wire {
		a := w.Allocation
		if a.MatchScore == 0 && w.Scores != nil {
			a.MatchScore = w.Scores.OverallMatch
		}
		out[i] = a
	}
	return out, nil
}

// DashboardStats calls GET /analytics/dashboard and returns its summary.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var resp struct {
		Summary *domain.DashboardStats `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, c.primaryURL+"/analytics/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Summary == nil {
		return nil, errors.New("remote: dashboard response has no summary")
	}
	return resp.Summary, nil
}

// Recommendations matches the candidate against the first n projects of the
// primary API. When that fails the legacy /recommend endpoint is asked.
func (c *Client) Recommendations(ctx context.Context, candidateID string, n int) ([]domain.Recommendation, error) {
	recs, err := c.projectRecommendations(ctx, candidateID, n)
	if err == nil {
		return recs, nil
	}
	legacy, lerr := c.legacyRecommendations(ctx, candidateID, n)
	if lerr != nil {
		return nil, errors.Join(err, lerr)
	}
	return legacy, nil
}

func (c *Client) projectRecommendations(ctx context.Context, candidateID string, n int) ([]domain.Recommendation, error) {
	if err := c.do(ctx, http.MethodGet, c.primaryURL+"/interns/"+url.PathEscape(candidateID), nil, nil); err != nil {
		return nil, err
	}
	var projects []domain.Project
	if err := c.do(ctx, http.MethodGet, c.primaryURL+"/projects", nil, &projects); err != nil {
		return nil, err
	}
	if n < len(projects) {
		projects = projects[:n]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Recommendation, len(projects))
	for i, p := range projects {
		org := p.Organization
		if org == "" {
			org = "Unknown Company"
		}
		desc := p.Description
		if desc == "" {
			desc = "No description available"
		}
		out[i] = domain.Recommendation{
			CompanyName:    org,
			JobTitle:       p.Title,
			MatchScore:     0.7 + c.rnd.Float64()*0.3,
			JobDescription: desc,
			ProjectID:      p.ID,
		}
	}
	return out, nil
}

func (c *Client) legacyRecommendations(ctx context.Context, candidateID string, n int) ([]domain.Recommendation, error) {
	id, err := strconv.ParseInt(candidateID, 10, 64)
	if err != nil {
		return nil, err
	}
	body := map[string]any{"candidate_id": id, "n": n}
	var resp struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	if err := c.do(ctx, http.MethodPost, c.legacyURL+"/recommend", body, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// RunAllocation calls POST /allocations/generate, falling back to the
// legacy POST /allocate.
func (c *Client) RunAllocation(ctx context.Context) (*domain.AllocationRun, error) {
	var resp struct {
		BatchID string `json:"batch_id"`
		Summary struct {
			TotalAllocations int `json:"total_allocations"`
		} `json:"summary"`
	}
	err := c.do(ctx, http.MethodPost, c.primaryURL+"/allocations/generate", nil, &resp)
	if err == nil {
		return &domain.AllocationRun{
			Message:          fmt.Sprintf("Allocation completed! Generated %d new allocations.", resp.Summary.TotalAllocations),
			BatchID:          resp.BatchID,
			TotalAllocations: resp.Summary.TotalAllocations,
		}, nil
	}

	var legacy struct {
		Message          string `json:"message"`
		TotalAllocations int    `json:"total_allocations"`
	}
	if lerr := c.do(ctx, http.MethodPost, c.legacyURL+"/allocate", nil, &legacy); lerr != nil {
		return nil, errors.Join(err, lerr)
	}
	return &domain.AllocationRun{Message: legacy.Message, TotalAllocations: legacy.TotalAllocations}, nil
}

// SubmitApplication calls the legacy POST /apply.
func (c *Client) SubmitApplication(ctx context.Context, app domain.Application) (*domain.ApplicationReceipt, error) {
	body := map[string]any{
		"candidate_id": app.CandidateID,
		"company_name": app.CompanyName,
		"job_title":    app.JobTitle,
		"match_score":  app.MatchScore,
	}
	var resp struct {
		Success bool `json:"success"`
		domain.ApplicationReceipt
		Error string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, c.legacyURL+"/apply", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("remote: apply rejected: %s", resp.Error)
	}
	return &resp.ApplicationReceipt, nil
}

type applicationWire struct {
	ApplicationID string  `json:"application_id"`
	CompanyName   string  `json:"company_name"`
	JobTitle      string  `json:"job_title"`
	Status        string  `json:"status"`
	AppliedDate   string  `json:"applied_date"`
	MatchScore    float64 `json:"match_score"`
}

// Applications calls the legacy GET /applications.
func (c *Client) Applications(ctx context.Context, candidateID string) ([]domain.Application, error) {
	var resp struct {
		Applications []applicationWire `json:"applications"`
	}
	u := c.legacyURL + "/applications?candidate_id=" + url.QueryEscape(candidateID)
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Application, len(resp.Applications))
	for i, w := range resp.Applications {
		applied, err := time.Parse("2006-01-02", w.AppliedDate)
		if err != nil {
			// keep the application; AppliedAt stays zero
			log.Printf("remote: application %s: bad applied_date %q: %v", w.ApplicationID, w.AppliedDate, err)
		}
		out[i] = domain.Application{
			ApplicationID: w.ApplicationID,
			CandidateID:   candidateID,
			CompanyName:   w.CompanyName,
			JobTitle:      w.JobTitle,
			MatchScore:    w.MatchScore,
			AppliedAt:     applied,
			Status:        w.Status,
		}
	}
	return out, nil
}

// AllotmentStatus calls the legacy GET /allotment.
func (c *Client) AllotmentStatus(ctx context.Context, candidateID string) (*domain.Allotment, error) {
	var resp struct {
		Allotment *domain.Allotment `json:"allotment"`
	}
	u := c.legacyURL + "/allotment?candidate_id=" + url.QueryEscape(candidateID)
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Allotment, nil
}

// ConfirmAllotment has no remote endpoint and always fails with
// errors.ErrUnsupported.
func (c *Client) ConfirmAllotment(ctx context.Context, allotment domain.Allotment) (*domain.Allotment, error) {
	return nil, fmt.Errorf("remote: confirm allotment: %w", errors.ErrUnsupported)
}
