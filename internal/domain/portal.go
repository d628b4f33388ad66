package domain

import (
	"context"
	"time"
)

// Candidate is an intern record as listed on the admin dashboard.
type Candidate struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	College  string         `json:"college"`
	Branch   string         `json:"branch,omitempty"`
	Skills   map[string]int `json:"skills,omitempty"`
	Category string         `json:"category,omitempty"`
	State    string         `json:"state,omitempty"`
	Status   string         `json:"status,omitempty"`
}

// AllocationIntern is the intern side of an allocation.
type AllocationIntern struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AllocationProject is the project side of an allocation.
type AllocationProject struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
}

// AllocationMentor is the mentor side of an allocation.
type AllocationMentor struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// Allocation pairs an intern with a project and a mentor.
type Allocation struct {
	ID         int64             `json:"id"`
	Intern     AllocationIntern  `json:"intern"`
	Project    AllocationProject `json:"project"`
	Mentor     AllocationMentor  `json:"mentor"`
	MatchScore float64           `json:"match_score"`
	Status     string            `json:"status"`
	StartDate  string            `json:"start_date"`
}

// DashboardStats is the six-field admin summary.
type DashboardStats struct {
	TotalInterns     int     `json:"total_interns"`
	TotalProjects    int     `json:"total_projects"`
	TotalMentors     int     `json:"total_mentors"`
	TotalAllocations int     `json:"total_allocations"`
	SuccessRate      float64 `json:"success_rate"`
	AverageRating    float64 `json:"average_rating"`
}

// AllocationRun is the outcome of running the allocation algorithm.
type AllocationRun struct {
	Message          string `json:"message"`
	BatchID          string `json:"batch_id,omitempty"`
	TotalAllocations int    `json:"total_allocations"`
}

// Project is an internship project offered on the portal.
type Project struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Description  string `json:"description"`
}

// Recommendation is an internship suggested to a candidate.
type Recommendation struct {
	CompanyName    string  `json:"Company_name"`
	JobTitle       string  `json:"job_title"`
	MatchScore     float64 `json:"matchscore"`
	JobDescription string  `json:"job_description"`
	ProjectID      int64   `json:"project_id,omitempty"`
}

// Application is a candidate's application to a recommended internship.
type Application struct {
	ApplicationID string    `json:"application_id,omitempty"`
	CandidateID   string    `json:"candidate_id"`
	CompanyName   string    `json:"company_name"`
	JobTitle      string    `json:"job_title"`
	MatchScore    float64   `json:"match_score"`
	AppliedAt     time.Time `json:"applied_at"`
	Status        string    `json:"status"`
}

// ApplicationReceipt acknowledges a submitted application.
type ApplicationReceipt struct {
	ApplicationID string `json:"application_id"`
	Message       string `json:"message"`
	Status        string `json:"status"`
}

// Allotment statuses.
const (
	AllotmentAllocated = "allocated"
	AllotmentConfirmed = "confirmed"
)

// Allotment is the finalized internship assignment for a candidate.
type Allotment struct {
	CandidateID string `json:"candidate_id,omitempty"`
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	MentorName  string `json:"mentor_name"`
	Location    string `json:"location"`
}

// Confirmed reports whether the allotment has been accepted. A nil
// allotment is not confirmed.
func (a *Allotment) Confirmed() bool {
	return a != nil && a.Status == AllotmentConfirmed
}

// Portal is the capability set the dashboard needs from the allocation
// service. A nil *Allotment with a nil error means nothing is allotted yet.
type Portal interface {
	ListCandidates(ctx context.Context) ([]Candidate, error)
	ListAllocations(ctx context.Context) ([]Allocation, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	Recommendations(ctx context.Context, candidateID string, n int) ([]Recommendation, error)
	RunAllocation(ctx context.Context) (*AllocationRun, error)
	SubmitApplication(ctx context.Context, app Application) (*ApplicationReceipt, error)
	Applications(ctx context.Context, candidateID string) ([]Application, error)
	AllotmentStatus(ctx context.Context, candidateID string) (*Allotment, error)
	ConfirmAllotment(ctx context.Context, allotment Allotment) (*Allotment, error)
}
