package approval

import (
	"strings"

	"talent-track/core/models"
)

// Display statuses for flow steps
const (
	FlowStepPending = "Pending"
)

// FlowStep is one displayable step of a candidate's approval chain
type FlowStep struct {
	Step       int    `json:"step"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Current    bool   `json:"current"`
	ApprovedBy string `json:"approved_by,omitempty"`
	ApprovedAt string `json:"approved_at,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// FlowView is the read-side reconstruction of a candidate's approval chain
type FlowView struct {
	CandidateID     int        `json:"candidate_id"`
	CandidateStatus string     `json:"candidate_status"`
	Path            PathKind   `json:"path"`
	Steps           []FlowStep `json:"steps"`
}

// BuildApprovalFlow reconstructs the displayable step list for a candidate
// from its notifications. Pure read: nothing is mutated. For candidates that
// have already progressed past approval (Hired/Approved/Selected), every
// step displays as Approved regardless of what the notification records
// say. This is a display-time backfill, not a state change.
func (e *Engine) BuildApprovalFlow(candidate models.Candidate, notifications []models.Notification, actorRole string) FlowView {
	path := e.workflow.PathForPosition(candidate.Position)
	lateStage := isLateStage(candidate.Status)
	pendingApproval := strings.EqualFold(candidate.Status, models.CandidateStatusPendingApproval)

	view := FlowView{
		CandidateID:     candidate.ID,
		CandidateStatus: candidate.Status,
		Path:            e.workflow.Classify(candidate.Position),
	}

	for i, role := range path {
		step := FlowStep{
			Step:   i + 1,
			Role:   role,
			Status: FlowStepPending,
		}
		if n := latestForRole(notifications, candidate.ID, role); n != nil {
			step.Status = displayStatus(n.Status)
			step.ApprovedBy = n.ApprovedBy
			step.ApprovedAt = n.ApprovedAt
			step.Comment = n.Comment
		}
		if lateStage {
			step.Status = models.NotificationStatusApproved
		}
		step.Current = !lateStage && pendingApproval &&
			step.Status == FlowStepPending && RolesEquivalent(role, actorRole)
		view.Steps = append(view.Steps, step)
	}

	// Synthesized trailing step summarizing overall completion
	final := FlowStep{
		Step:   len(path) + 1,
		Role:   "Final Approval",
		Status: FlowStepPending,
	}
	if lateStage {
		final.Status = models.NotificationStatusApproved
		final.ApprovedBy = candidate.FinalApprovedBy
		final.ApprovedAt = candidate.FinalApprovedAt
		final.Comment = candidate.FinalApprovalComment
	}
	view.Steps = append(view.Steps, final)

	return view
}

// latestForRole finds the most recent notification addressed to a path role,
// any status. Skips HR-addressed bookkeeping notifications by construction
// since HR never appears in a path.
func latestForRole(notifications []models.Notification, candidateID int, role string) *models.Notification {
	for i := len(notifications) - 1; i >= 0; i-- {
		n := &notifications[i]
		if n.CandidateID == candidateID && RolesEquivalent(n.ForRole, role) {
			return n
		}
	}
	return nil
}

// displayStatus maps a notification status onto the step display vocabulary:
// a live "Sent" request shows as a Pending step
func displayStatus(notificationStatus string) string {
	if notificationStatus == models.NotificationStatusSent {
		return FlowStepPending
	}
	return notificationStatus
}

func isLateStage(status string) bool {
	for _, s := range []string{models.CandidateStatusHired, models.CandidateStatusApproved, models.CandidateStatusSelected} {
		if strings.EqualFold(status, s) {
			return true
		}
	}
	return false
}
