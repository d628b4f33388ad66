// Package fallback implements a domain.Portal over fixed data. It is served
// when the remote allocation service cannot be reached.
package fallback

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"internportal/internal/domain"
)

// Portal serves fixed candidates, allocations, statistics and
// recommendations. Allocation runs append simulated allocations.
type Portal struct {
	mu          sync.Mutex
	allocations []domain.Allocation
}

var _ domain.Portal = (*Portal)(nil)

// New creates a fallback portal seeded with the fixed allocations.
func New() *Portal {
	allocs := make([]domain.Allocation, len(seedAllocations))
	copy(allocs, seedAllocations)
	return &Portal{allocations: allocs}
}

// ListCandidates returns the fixed candidate set.
func (p *Portal) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, len(candidates))
	for i, c := range candidates {
		skills := make(map[string]int, len(c.Skills))
		for k, v := range c.Skills {
			skills[k] = v
		}
		c.Skills = skills
		out[i] = c
	}
	return out, nil
}

// ListAllocations returns the fixed allocations plus any simulated ones.
func (p *Portal) ListAllocations(ctx context.Context) ([]domain.Allocation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Allocation, len(p.allocations))
	copy(out, p.allocations)
	return out, nil
}

// DashboardStats returns the fixed six-field summary.
func (p *Portal) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	s := stats
	return &s, nil
}

// Recommendations returns the first n fixed recommendations.
func (p *Portal) Recommendations(ctx context.Context, candidateID string, n int) ([]domain.Recommendation, error) {
	if n <= 0 || n > len(recommendations) {
		n = len(recommendations)
	}
	out := make([]domain.Recommendation, n)
	copy(out, recommendations[:n])
	return out, nil
}

// RunAllocation simulates an allocation run by appending two pending
// allocations.
func (p *Portal) RunAllocation(ctx context.Context) (*domain.AllocationRun, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := int64(len(p.allocations))
	for i, a := range simulatedAllocations {
		a.ID = next + int64(i) + 1
		p.allocations = append(p.allocations, a)
	}
	return &domain.AllocationRun{
		Message:          "Smart allocation completed successfully!",
		TotalAllocations: len(p.allocations),
	}, nil
}

// SubmitApplication acknowledges the application with a derived ID.
func (p *Portal) SubmitApplication(ctx context.Context, app domain.Application) (*domain.ApplicationReceipt, error) {
	return &domain.ApplicationReceipt{
		ApplicationID: fmt.Sprintf("APP_%s_%d", app.CandidateID, hash(app.CompanyName+app.JobTitle)%10000),
		Message:       "Application submitted successfully to " + app.CompanyName,
		Status:        "pending",
	}, nil
}

// Applications returns no applications; locally recorded ones are kept by
// the caller.
func (p *Portal) Applications(ctx context.Context, candidateID string) ([]domain.Application, error) {
	return []domain.Application{}, nil
}

// AllotmentStatus picks one of the fixed allotment scenarios, stable per
// candidate. The first scenario is "nothing allotted yet".
func (p *Portal) AllotmentStatus(ctx context.Context, candidateID string) (*domain.Allotment, error) {
	scenario := allotments[hash(candidateID)%uint32(len(allotments))]
	if scenario == nil {
		return nil, nil
	}
	a := *scenario
	a.CandidateID = candidateID
	return &a, nil
}

// ConfirmAllotment marks the allotment confirmed.
func (p *Portal) ConfirmAllotment(ctx context.Context, allotment domain.Allotment) (*domain.Allotment, error) {
	allotment.Status = domain.AllotmentConfirmed
	return &allotment, nil
}

func hash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
