package models

// Notification is one pending-or-resolved approval request addressed to a
// role. Notifications are versioned by append: the engine always looks for
// the most recent "Sent" one for a (candidate, role) pair and never reuses
// a resolved record.
type Notification struct {
	ID            int    `json:"id"`
	CandidateID   int    `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	Position      string `json:"position"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	ForRole       string `json:"for_role"`
	FromRole      string `json:"from_role"`
	Message       string `json:"message"`
	Timestamp     string `json:"timestamp"`
	StepNumber    int    `json:"step_number"`
	TotalSteps    int    `json:"total_steps"`
	ApprovedBy    string `json:"approved_by,omitempty"`
	ApprovedAt    string `json:"approved_at,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// Notification types
const (
	NotificationApprovalRequest = "approval_request"
	NotificationApprovalUpdate  = "approval_update"
	NotificationFinalApproval   = "final_approval_complete"
)

// Notification statuses
const (
	NotificationStatusSent     = "Sent"
	NotificationStatusApproved = "Approved"
	NotificationStatusRejected = "Rejected"
	NotificationStatusOnHold   = "On Hold"
)
