package analytics

import (
	"strings"

	"talent-track/core/models"
	"talent-track/core/status"
)

// Stored statuses that force a job closed regardless of the derived value
var closedOverrides = []string{"closed", "filled", "cancelled", "expired", "on hold"}

// Metrics is the dashboard headline block
type Metrics struct {
	JobCount         int `json:"job_count"`
	OpeningsCount    int `json:"openings_count"`
	CandidateCount   int `json:"candidate_count"`
	UserCount        int `json:"user_count"`
	PendingApprovals int `json:"pending_approvals"`
	OpenVacancies    int `json:"open_vacancies"`
	ClosedVacancies  int `json:"closed_vacancies"`
	TotalVacancies   int `json:"total_vacancies"`
}

// BuildMetrics computes the dashboard headline numbers from full collections
func BuildMetrics(engine *status.Engine, jobs []models.Job, candidates []models.Candidate, users []models.User) Metrics {
	return Metrics{
		JobCount:         len(jobs),
		OpeningsCount:    OpeningsCount(jobs),
		CandidateCount:   len(candidates),
		UserCount:        len(users),
		PendingApprovals: len(PendingApprovals(candidates)),
		OpenVacancies:    OpenVacancies(engine, jobs, candidates),
		ClosedVacancies:  ClosedVacancies(engine, jobs, candidates),
		TotalVacancies:   TotalVacancies(jobs),
	}
}

// OpeningsCount sums openings across jobs whose stored status is open
// (or blank, which defaults to open)
func OpeningsCount(jobs []models.Job) int {
	total := 0
	for _, job := range jobs {
		s := strings.ToLower(strings.TrimSpace(job.Status))
		if s == "" || s == "open" {
			total += job.JobOpenings.IntOr(0)
		}
	}
	return total
}

// OpenVacancies sums openings for jobs that derive to Open and carry no
// explicit closed-ish stored status
func OpenVacancies(engine *status.Engine, jobs []models.Job, candidates []models.Candidate) int {
	total := 0
	for _, job := range jobs {
		if engine.DeriveStatus(job, candidates) == models.JobStatusOpen && !hasClosedOverride(job) {
			total += job.JobOpenings.IntOr(0)
		}
	}
	return total
}

// ClosedVacancies sums openings for jobs that derive to Closed or carry an
// explicit closed-ish stored status
func ClosedVacancies(engine *status.Engine, jobs []models.Job, candidates []models.Candidate) int {
	total := 0
	for _, job := range jobs {
		if engine.DeriveStatus(job, candidates) == models.JobStatusClosed || hasClosedOverride(job) {
			total += job.JobOpenings.IntOr(0)
		}
	}
	return total
}

// TotalVacancies sums openings across every job regardless of status
func TotalVacancies(jobs []models.Job) int {
	total := 0
	for _, job := range jobs {
		total += job.JobOpenings.IntOr(0)
	}
	return total
}

// PendingApprovals returns candidates sitting in Pending Approval
func PendingApprovals(candidates []models.Candidate) []models.Candidate {
	var pending []models.Candidate
	for _, c := range candidates {
		if c.Status == models.CandidateStatusPendingApproval {
			pending = append(pending, c)
		}
	}
	return pending
}

func hasClosedOverride(job models.Job) bool {
	s := strings.ToLower(strings.TrimSpace(job.Status))
	for _, o := range closedOverrides {
		if s == o {
			return true
		}
	}
	return false
}
