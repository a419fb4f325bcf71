package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"talent-track/core/approval"
	"talent-track/core/models"
	"talent-track/core/repository"
)

// ApprovalHandler handles approval workflow HTTP requests. Each action is a
// self-contained read-whole-collection, mutate, write-whole-collection cycle
// under the candidate and notification locks.
type ApprovalHandler struct {
	store            *repository.Store
	candidateRepo    *repository.CandidateRepository
	notificationRepo *repository.NotificationRepository
	activityRepo     *repository.ActivityRepository
	engine           *approval.Engine
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(
	store *repository.Store,
	candidateRepo *repository.CandidateRepository,
	notificationRepo *repository.NotificationRepository,
	activityRepo *repository.ActivityRepository,
	engine *approval.Engine,
) *ApprovalHandler {
	return &ApprovalHandler{
		store:            store,
		candidateRepo:    candidateRepo,
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
		engine:           engine,
	}
}

// SendForApprovalRequest starts the approval workflow for a candidate
type SendForApprovalRequest struct {
	CandidateID int    `json:"candidate_id"`
	Message     string `json:"message"`
}

// SendForApproval handles POST /v1/approvals/send
func (h *ApprovalHandler) SendForApproval(w http.ResponseWriter, r *http.Request) {
	var req SendForApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	unlock := h.store.Lock(repository.CandidatesFile, repository.NotificationsFile)
	defer unlock()

	candidates, err := h.candidateRepo.List()
	if err != nil {
		http.Error(w, "Failed to load candidates: "+err.Error(), http.StatusInternalServerError)
		return
	}
	notifications, err := h.notificationRepo.List()
	if err != nil {
		http.Error(w, "Failed to load notifications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	result, err := h.engine.SendForApproval(candidates, notifications, req.CandidateID, req.Message, actorRole(r), actorUser(r))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	notifications = append(notifications, result.Notification)
	if err := h.persist(candidates, notifications); err != nil {
		http.Error(w, "Failed to save approval state: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.logActivity("approval",
		fmt.Sprintf("Candidate %s (ID: %d) sent for approval to %s", result.Candidate.Name, result.Candidate.ID, result.Notification.ForRole),
		r, result.Candidate.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidate":    result.Candidate,
		"notification": result.Notification,
	})
}

// ActRequest carries an approver's decision
type ActRequest struct {
	CandidateID int    `json:"candidate_id"`
	Action      string `json:"action"` // approve | reject | hold
	Comment     string `json:"comment"`
}

// Act handles POST /v1/approvals/act
func (h *ApprovalHandler) Act(w http.ResponseWriter, r *http.Request) {
	var req ActRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	unlock := h.store.Lock(repository.CandidatesFile, repository.NotificationsFile)
	defer unlock()

	candidates, err := h.candidateRepo.List()
	if err != nil {
		http.Error(w, "Failed to load candidates: "+err.Error(), http.StatusInternalServerError)
		return
	}
	notifications, err := h.notificationRepo.List()
	if err != nil {
		http.Error(w, "Failed to load notifications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	result, err := h.engine.ApproveCandidate(candidates, notifications, req.CandidateID, approval.Action(req.Action), req.Comment, actorRole(r), actorUser(r))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	notifications = append(notifications, result.Created...)
	if err := h.persist(candidates, notifications); err != nil {
		http.Error(w, "Failed to save approval state: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.logActivity("approval",
		fmt.Sprintf("%s applied %q to candidate %s (ID: %d)", actorRole(r), req.Action, result.Candidate.Name, result.Candidate.ID),
		r, result.Candidate.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidate":      result.Candidate,
		"final_approval": result.FinalApproval,
		"created":        result.Created,
	})
}

// GetFlow handles GET /v1/candidates/{id}/approval-flow
func (h *ApprovalHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	id, ok := candidateIDVar(r)
	if !ok {
		http.Error(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	candidate, err := h.candidateRepo.Get(id)
	if err != nil {
		http.Error(w, "Candidate not found", http.StatusNotFound)
		return
	}
	notifications, err := h.notificationRepo.List()
	if err != nil {
		http.Error(w, "Failed to load notifications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	role := r.URL.Query().Get("role")
	if role == "" {
		role = actorRole(r)
	}

	flow := h.engine.BuildApprovalFlow(*candidate, notifications, role)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flow)
}

func (h *ApprovalHandler) persist(candidates []models.Candidate, notifications []models.Notification) error {
	if err := h.candidateRepo.Save(candidates); err != nil {
		return err
	}
	return h.notificationRepo.Save(notifications)
}

// writeEngineError maps engine errors onto HTTP statuses. Anything outside
// the known taxonomy is logged and surfaced as a generic failure; approval
// errors are never silently dropped.
func (h *ApprovalHandler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, approval.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, approval.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Approval action failed: %v", err)
		http.Error(w, "Approval action failed", http.StatusInternalServerError)
	}
}

func (h *ApprovalHandler) logActivity(kind, description string, r *http.Request, candidateID int) {
	entry := models.ActivityEntry{
		Type:        kind,
		Description: description,
		User:        actorUser(r),
		RelatedID:   models.FlexString(fmt.Sprintf("%d", candidateID)),
	}
	if err := h.activityRepo.Append(entry); err != nil {
		log.Printf("Activity log write failed: %v", err)
	}
}
