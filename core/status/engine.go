package status

import (
	"strings"
	"time"

	"talent-track/core/models"
)

// Engine derives job lifecycle status and hiring pace from the job and
// candidate collections. It is a pure computation layer: it never reads or
// writes files, and it never fails on malformed records: bad fields degrade
// to defaults so one broken job cannot block a listing.
type Engine struct {
	now func() time.Time
}

// Option customizes the engine
type Option func(*Engine)

// WithClock overrides the engine clock, used by tests
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

// NewEngine creates a status engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Defaults applied when a job record carries missing or non-numeric fields
const (
	DefaultLeadTimeDays = 30
	DefaultOpenings     = 0
)

// DeriveStatus computes whether a posting is effectively open or closed.
// Order matters: time expiry wins over fill level, fill level wins over the
// stored status. The caller is responsible for persisting a changed status.
func (e *Engine) DeriveStatus(job models.Job, allCandidates []models.Candidate) string {
	now := e.now()

	posted, ok := parsePostedAt(job.PostedAt)
	if !ok {
		// Unparsable posting date behaves as freshly posted
		posted = now
	}

	leadDays := job.JobLeadTime.IntOr(DefaultLeadTimeDays)
	if now.After(posted.AddDate(0, 0, leadDays)) {
		return models.JobStatusClosed
	}

	hired := 0
	for _, c := range allCandidates {
		if strings.EqualFold(c.Status, models.CandidateStatusHired) && c.JobID.String() == job.JobID {
			hired++
		}
	}
	if hired >= job.JobOpenings.IntOr(DefaultOpenings) {
		return models.JobStatusClosed
	}

	return models.JobStatusOpen
}

// StatusChanged reports whether the stored status differs from the derived
// one. Comparison is case-insensitive: legacy records store "open"/"closed".
func StatusChanged(stored, derived string) bool {
	return !strings.EqualFold(strings.TrimSpace(stored), derived)
}

// CandidatesForJob filters the candidate collection down to one posting.
// job_id is compared as a normalized string because older candidate records
// store it as a number.
func CandidatesForJob(jobID string, candidates []models.Candidate) []models.Candidate {
	var out []models.Candidate
	for _, c := range candidates {
		if c.JobID.String() == jobID {
			out = append(out, c)
		}
	}
	return out
}

func parsePostedAt(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(models.PostedAtLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(models.DateLayout, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
