package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"internportal/internal/domain"
)

func newTestServer(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", srv.URL, srv.Client())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestDashboardStatsSummary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"summary": map[string]any{
			"total_interns": 10, "total_projects": 2, "success_rate": 50.5,
		}})
	})
	c := newTestServer(t, mux)

	stats, err := c.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.TotalInterns != 10 || stats.TotalProjects != 2 || stats.SuccessRate != 50.5 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestStatusError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/interns", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := newTestServer(t, mux)

	_, err := c.ListCandidates(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", se.StatusCode)
	}
}

func TestListAllocationsOverallMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/allocations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 1, "status": "active", "match_score": 0.9},
			{"id": 2, "status": "pending", "scores": map[string]any{"overall_match": 0.75}},
		})
	})
	c := newTestServer(t, mux)

	allocs, err := c.ListAllocations(context.Background())
	if err != nil {
		t.Fatalf("ListAllocations: %v", err)
	}
	if len(allocs) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocs))
	}
	if allocs[0].MatchScore != 0.9 || allocs[1].MatchScore != 0.75 {
		t.Errorf("unexpected match scores %v, %v", allocs[0].MatchScore, allocs[1].MatchScore)
	}
}

func TestRecommendationsFromProjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/interns/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "12345" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"id": 12345})
	})
	mux.HandleFunc("GET /api/projects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []domain.Project{
			{ID: 1, Title: "Backend", Organization: "Acme", Description: "APIs"},
			{ID: 2, Title: "Frontend"},
			{ID: 3, Title: "Data"},
		})
	})
	c := newTestServer(t, mux)

	recs, err := c.Recommendations(context.Background(), "12345", 2)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].CompanyName != "Acme" || recs[0].ProjectID != 1 {
		t.Errorf("unexpected first recommendation %+v", recs[0])
	}
	if recs[1].CompanyName != "Unknown Company" || recs[1].JobDescription != "No description available" {
		t.Errorf("expected placeholders, got %+v", recs[1])
	}
	for _, r := range recs {
		if r.MatchScore < 0.7 || r.MatchScore > 1.0 {
			t.Errorf("match score %v out of range", r.MatchScore)
		}
	}
}

func TestRecommendationsLegacyFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/interns/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /recommend", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CandidateID int64 `json:"candidate_id"`
			N           int   `json:"n"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CandidateID != 777 || body.N != 5 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"recommendations": []map[string]any{
			{"Company_name": "Legacy Co", "job_title": "Intern", "matchscore": 0.8},
		}})
	})
	c := newTestServer(t, mux)

	recs, err := c.Recommendations(context.Background(), "777", 5)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(recs) != 1 || recs[0].CompanyName != "Legacy Co" {
		t.Errorf("unexpected legacy recommendations %+v", recs)
	}
}

func TestRunAllocationLegacyFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /allocate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"message": "done", "total_allocations": 7})
	})
	c := newTestServer(t, mux)

	run, err := c.RunAllocation(context.Background())
	if err != nil {
		t.Fatalf("RunAllocation: %v", err)
	}
	if run.TotalAllocations != 7 || run.Message != "done" {
		t.Errorf("unexpected run %+v", run)
	}
}

func TestRunAllocationPrimary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/allocations/generate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"batch_id": "B1", "summary": map[string]any{"total_allocations": 3}})
	})
	c := newTestServer(t, mux)

	run, err := c.RunAllocation(context.Background())
	if err != nil {
		t.Fatalf("RunAllocation: %v", err)
	}
	if run.BatchID != "B1" || run.TotalAllocations != 3 {
		t.Errorf("unexpected run %+v", run)
	}
}

func TestApplicationsAndAllotment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"applications": []map[string]any{
			{"application_id": "A1", "company_name": "Acme", "job_title": "Intern", "status": "pending", "applied_date": "2025-01-10"},
		}})
	})
	mux.HandleFunc("GET /allotment", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("candidate_id") != "12345" {
			writeJSON(w, map[string]any{"allotment": nil})
			return
		}
		writeJSON(w, map[string]any{"allotment": map[string]any{"company_name": "Acme", "status": "allocated"}})
	})
	c := newTestServer(t, mux)
	ctx := context.Background()

	apps, err := c.Applications(ctx, "12345")
	if err != nil {
		t.Fatalf("Applications: %v", err)
	}
	if len(apps) != 1 || apps[0].CandidateID != "12345" || apps[0].AppliedAt.Day() != 10 {
		t.Errorf("unexpected applications %+v", apps)
	}

	a, err := c.AllotmentStatus(ctx, "12345")
	if err != nil {
		t.Fatalf("AllotmentStatus: %v", err)
	}
	if a == nil || a.Status != domain.AllotmentAllocated {
		t.Errorf("unexpected allotment %+v", a)
	}

	none, err := c.AllotmentStatus(ctx, "99999")
	if err != nil || none != nil {
		t.Errorf("expected no allotment, got %+v, %v", none, err)
	}
}

func TestApplicationsBadDateKept(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"applications": []map[string]any{
			{"application_id": "A2", "company_name": "Acme", "status": "pending", "applied_date": "10/01/2025"},
		}})
	})
	c := newTestServer(t, mux)

	apps, err := c.Applications(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Applications: %v", err)
	}
	if len(apps) != 1 || apps[0].ApplicationID != "A2" || !apps[0].AppliedAt.IsZero() {
		t.Errorf("expected application kept with zero AppliedAt, got %+v", apps)
	}
}

func TestSubmitApplicationRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /apply", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": false, "error": "closed"})
	})
	c := newTestServer(t, mux)

	if _, err := c.SubmitApplication(context.Background(), domain.Application{CandidateID: "1"}); err == nil {
		t.Fatal("expected error for rejected application")
	}
}

func TestConfirmAllotmentUnsupported(t *testing.T) {
	c := New(DefaultPrimaryURL, DefaultLegacyURL, nil)
	_, err := c.ConfirmAllotment(context.Background(), domain.Allotment{})
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
