package approval

import (
	"errors"
	"fmt"
	"time"

	"talent-track/core/models"
)

// Sentinel errors surfaced to the route layer, which maps them onto
// user-visible failures. Anything else escaping the engine is treated as a
// generic failure by the caller.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Action is an approver's decision on a pending request
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionHold    Action = "hold"
)

// Engine drives candidates through the role-ordered approval chain. It
// operates on borrowed in-memory collections: candidates are mutated in
// place, new notifications are returned for the caller to append and
// persist. The engine itself never touches storage.
type Engine struct {
	workflow *Workflow
	now      func() time.Time
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

// NewEngine creates an approval engine. A nil workflow falls back to the
// built-in default.
func NewEngine(workflow *Workflow, opts ...Option) *Engine {
	if workflow == nil {
		workflow = DefaultWorkflow()
	}
	e := &Engine{workflow: workflow, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workflow exposes the engine's role configuration
func (e *Engine) Workflow() *Workflow {
	return e.workflow
}

// SendResult carries the outcome of SendForApproval. Candidate points into
// the caller's slice; Notification is new and must be appended by the caller.
type SendResult struct {
	Candidate    *models.Candidate
	Notification models.Notification
}

// SendForApproval moves a candidate into Pending Approval and creates the
// step-1 notification for the first role of the selected path. Re-sending an
// already-pending candidate creates a second step-1 notification; the engine
// does not enforce a single in-flight request.
func (e *Engine) SendForApproval(candidates []models.Candidate, notifications []models.Notification, candidateID int, message, actorRole, actorUser string) (SendResult, error) {
	if candidateID <= 0 {
		return SendResult{}, fmt.Errorf("%w: missing candidate id", ErrInvalidRequest)
	}
	candidate := findCandidate(candidates, candidateID)
	if candidate == nil {
		return SendResult{}, fmt.Errorf("%w: candidate %d", ErrNotFound, candidateID)
	}

	path := e.workflow.PathForPosition(candidate.Position)
	ts := e.now().Format(models.AuditTimeLayout)

	candidate.Status = models.CandidateStatusPendingApproval
	candidate.SentForApprovalAt = ts
	candidate.SentForApprovalBy = actorName(actorUser, actorRole)
	candidate.ApprovalRequestMessage = message

	notification := models.Notification{
		ID:            nextNotificationID(notifications),
		CandidateID:   candidate.ID,
		CandidateName: candidate.Name,
		Position:      candidate.Position,
		Type:          models.NotificationApprovalRequest,
		Status:        models.NotificationStatusSent,
		ForRole:       path[0],
		FromRole:      actorRole,
		Message:       message,
		Timestamp:     ts,
		StepNumber:    1,
		TotalSteps:    len(path),
	}

	return SendResult{Candidate: candidate, Notification: notification}, nil
}

// ActionResult carries the outcome of ApproveCandidate. Candidate and Acted
// point into the caller's slices; Created holds new notifications to append.
type ActionResult struct {
	Candidate     *models.Candidate
	Acted         *models.Notification
	Created       []models.Notification
	FinalApproval bool
}

// ApproveCandidate resolves the current pending notification for the acting
// role and advances, rejects, or holds the candidate. Approving at the
// path's final role is the final approval: the candidate becomes Approved
// and HR gets a completion notification instead of a next-step request.
func (e *Engine) ApproveCandidate(candidates []models.Candidate, notifications []models.Notification, candidateID int, action Action, comment, actorRole, actorUser string) (ActionResult, error) {
	if candidateID <= 0 {
		return ActionResult{}, fmt.Errorf("%w: missing candidate id", ErrInvalidRequest)
	}
	switch action {
	case ActionApprove, ActionReject, ActionHold:
	default:
		return ActionResult{}, fmt.Errorf("%w: unknown action %q", ErrInvalidRequest, action)
	}

	candidate := findCandidate(candidates, candidateID)
	if candidate == nil {
		return ActionResult{}, fmt.Errorf("%w: candidate %d", ErrNotFound, candidateID)
	}

	pending := latestSentForRole(notifications, candidateID, actorRole)
	if pending == nil {
		return ActionResult{}, fmt.Errorf("%w: no pending approval request for role %s on candidate %d", ErrNotFound, actorRole, candidateID)
	}

	ts := e.now().Format(models.AuditTimeLayout)
	pending.ApprovedBy = actorName(actorUser, actorRole)
	pending.ApprovedAt = ts
	pending.Comment = comment

	result := ActionResult{Candidate: candidate, Acted: pending}

	switch action {
	case ActionReject:
		pending.Status = models.NotificationStatusRejected
		candidate.Status = models.CandidateStatusRejected
		candidate.RejectionReason = comment
		candidate.RejectedBy = actorRole
		candidate.RejectedAt = ts
		return result, nil

	case ActionHold:
		pending.Status = models.NotificationStatusOnHold
		candidate.Status = models.CandidateStatusOnHold
		candidate.HoldReason = comment
		candidate.HoldBy = actorRole
		candidate.HoldAt = ts
		return result, nil
	}

	// action == approve
	pending.Status = models.NotificationStatusApproved

	path := e.workflow.PathForPosition(candidate.Position)
	idx := roleIndex(path, actorRole)
	if idx < 0 {
		return ActionResult{}, fmt.Errorf("%w: role %s is not part of the approval path", ErrInvalidRequest, actorRole)
	}
	isFinal := idx == len(path)-1

	candidate.ApprovalHistory = append(candidate.ApprovalHistory, models.ApprovalStep{
		Step:           len(candidate.ApprovalHistory) + 1,
		ApprovedByRole: actorRole,
		ApprovedByUser: actorUser,
		ApprovedAt:     ts,
		Comment:        comment,
		IsFinal:        isFinal,
	})

	nextID := nextNotificationID(notifications)

	if isFinal {
		candidate.Status = models.CandidateStatusApproved
		candidate.FinalApprovedBy = actorRole
		candidate.FinalApprovedAt = ts
		candidate.FinalApprovalComment = comment

		result.FinalApproval = true
		result.Created = append(result.Created, models.Notification{
			ID:            nextID,
			CandidateID:   candidate.ID,
			CandidateName: candidate.Name,
			Position:      candidate.Position,
			Type:          models.NotificationFinalApproval,
			Status:        models.NotificationStatusApproved,
			ForRole:       RoleHR,
			FromRole:      actorRole,
			Message:       fmt.Sprintf("%s has been fully approved by %s", candidate.Name, actorRole),
			Timestamp:     ts,
			StepNumber:    len(path),
			TotalSteps:    len(path),
		})
		return result, nil
	}

	nextStep := pending.StepNumber + 1
	if pending.StepNumber == 0 {
		nextStep = idx + 2
	}

	result.Created = append(result.Created, models.Notification{
		ID:            nextID,
		CandidateID:   candidate.ID,
		CandidateName: candidate.Name,
		Position:      candidate.Position,
		Type:          models.NotificationApprovalRequest,
		Status:        models.NotificationStatusSent,
		ForRole:       path[idx+1],
		FromRole:      actorRole,
		Message:       candidate.ApprovalRequestMessage,
		Timestamp:     ts,
		StepNumber:    nextStep,
		TotalSteps:    len(path),
	})

	// HR sees every intermediate step, not just completion
	result.Created = append(result.Created, models.Notification{
		ID:            nextID + 1,
		CandidateID:   candidate.ID,
		CandidateName: candidate.Name,
		Position:      candidate.Position,
		Type:          models.NotificationApprovalUpdate,
		Status:        models.NotificationStatusApproved,
		ForRole:       RoleHR,
		FromRole:      actorRole,
		Message:       fmt.Sprintf("%s approved %s (step %d of %d)", actorRole, candidate.Name, pending.StepNumber, len(path)),
		Timestamp:     ts,
		StepNumber:    pending.StepNumber,
		TotalSteps:    len(path),
	})

	return result, nil
}

func findCandidate(candidates []models.Candidate, id int) *models.Candidate {
	for i := range candidates {
		if candidates[i].ID == id {
			return &candidates[i]
		}
	}
	return nil
}

// latestSentForRole finds the most recent live request addressed to a role.
// Append order stands in for recency; MOE/MOP are interchangeable.
func latestSentForRole(notifications []models.Notification, candidateID int, role string) *models.Notification {
	for i := len(notifications) - 1; i >= 0; i-- {
		n := &notifications[i]
		if n.CandidateID == candidateID && n.Status == models.NotificationStatusSent && RolesEquivalent(n.ForRole, role) {
			return n
		}
	}
	return nil
}

func nextNotificationID(notifications []models.Notification) int {
	max := 0
	for _, n := range notifications {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

func actorName(user, role string) string {
	if user != "" {
		return user
	}
	return role
}
