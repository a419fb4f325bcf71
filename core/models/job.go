package models

// Timestamp layouts used across the persisted collections. Posting dates use
// the space-separated layout; audit trail fields use the ISO-8601 layout.
// The two formats are part of the on-disk contract and are never unified.
const (
	PostedAtLayout  = "2006-01-02 15:04:05"
	AuditTimeLayout = "2006-01-02T15:04:05"
	DateLayout      = "2006-01-02"
	InterviewLayout = "2006-01-02 15:04"
)

// Job represents a job posting
type Job struct {
	JobID       string  `json:"job_id"`
	JobTitle    string  `json:"job_title"`
	Department  string  `json:"department"`
	Description string  `json:"description,omitempty"`
	PostedAt    string  `json:"posted_at"`
	JobLeadTime FlexInt `json:"job_lead_time"`
	JobOpenings FlexInt `json:"job_openings"`
	Status      string  `json:"status"`
}

// Derived job statuses. Stored values are compared case-insensitively, so
// legacy lowercase "open"/"closed" records keep working.
const (
	JobStatusOpen   = "Open"
	JobStatusClosed = "Closed"
)
