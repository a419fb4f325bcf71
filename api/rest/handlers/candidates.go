package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"talent-track/core/insights"
	"talent-track/core/models"
	"talent-track/core/repository"
)

// CandidateHandler handles candidate pipeline HTTP requests
type CandidateHandler struct {
	candidateRepo *repository.CandidateRepository
	activityRepo  *repository.ActivityRepository
	insights      *insights.Generator
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(
	candidateRepo *repository.CandidateRepository,
	activityRepo *repository.ActivityRepository,
	insightsGen *insights.Generator,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		activityRepo:  activityRepo,
		insights:      insightsGen,
	}
}

// CreateCandidate handles POST /v1/candidates
func (h *CandidateHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var candidate models.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if candidate.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.candidateRepo.Create(&candidate); err != nil {
		http.Error(w, "Failed to create candidate: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.logActivity("candidate", fmt.Sprintf("Candidate %s (ID: %d) added", candidate.Name, candidate.ID), r, candidate.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":     candidate.ID,
		"status": candidate.Status,
	})
}

// ListCandidates handles GET /v1/candidates with optional job_id and status
// filters
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidateRepo.List()
	if err != nil {
		http.Error(w, "Failed to list candidates: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jobFilter := r.URL.Query().Get("job_id")
	statusFilter := r.URL.Query().Get("status")

	items := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if jobFilter != "" && c.JobID.String() != jobFilter {
			continue
		}
		if statusFilter != "" && c.Status != statusFilter {
			continue
		}
		items = append(items, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": items,
	})
}

// GetCandidate handles GET /v1/candidates/{id}
func (h *CandidateHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidate)
}

// UpdateStatusRequest represents a direct pipeline status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/candidates/{id}/status for the pipeline
// states managed outside the approval workflow (shortlisting, interviews,
// hiring). Approval states go through the approval endpoints.
func (h *CandidateHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := candidateIDVar(r)
	if !ok {
		http.Error(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	candidate, err := h.candidateRepo.Get(id)
	if err != nil {
		http.Error(w, "Candidate not found", http.StatusNotFound)
		return
	}

	candidate.Status = req.Status
	if err := h.candidateRepo.Update(*candidate); err != nil {
		http.Error(w, "Failed to update candidate: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.logActivity("candidate_status_updated",
		fmt.Sprintf("Candidate %s (ID: %d) status changed to %s", candidate.Name, candidate.ID, req.Status), r, id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":     candidate.ID,
		"status": candidate.Status,
	})
}

// ScheduleInterviewRequest carries the interview slot
type ScheduleInterviewRequest struct {
	Date string `json:"date"` // 2006-01-02
	Time string `json:"time"` // 15:04
}

// ScheduleInterview handles POST /v1/candidates/{id}/interview
func (h *CandidateHandler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	id, ok := candidateIDVar(r)
	if !ok {
		http.Error(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	var req ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	candidate, err := h.candidateRepo.Get(id)
	if err != nil {
		http.Error(w, "Candidate not found", http.StatusNotFound)
		return
	}

	candidate.InterviewDate = req.Date
	candidate.InterviewTime = req.Time
	candidate.Status = models.CandidateStatusInterviewScheduled
	if err := h.candidateRepo.Update(*candidate); err != nil {
		http.Error(w, "Failed to update candidate: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.logActivity("interview",
		fmt.Sprintf("Interview scheduled for %s (ID: %d) on %s %s", candidate.Name, candidate.ID, req.Date, req.Time), r, id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidate)
}

// UpdateOnboardingRequest merges onboarding step states
type UpdateOnboardingRequest struct {
	Steps map[string]string `json:"steps"`
}

// UpdateOnboarding handles PATCH /v1/candidates/{id}/onboarding. Completing
// steps on a hired candidate kicks off background probation insights.
func (h *CandidateHandler) UpdateOnboarding(w http.ResponseWriter, r *http.Request) {
	id, ok := candidateIDVar(r)
	if !ok {
		http.Error(w, "Invalid candidate id", http.StatusBadRequest)
		return
	}

	var req UpdateOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Steps) == 0 {
		http.Error(w, "steps are required", http.StatusBadRequest)
		return
	}

	candidate, err := h.candidateRepo.Get(id)
	if err != nil {
		http.Error(w, "Candidate not found", http.StatusNotFound)
		return
	}

	if candidate.Onboarding == nil {
		candidate.Onboarding = make(map[string]string)
	}
	for step, state := range req.Steps {
		candidate.Onboarding[step] = state
	}
	if err := h.candidateRepo.Update(*candidate); err != nil {
		http.Error(w, "Failed to update candidate: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.logActivity("onboarding",
		fmt.Sprintf("Onboarding updated for %s (ID: %d)", candidate.Name, candidate.ID), r, id)

	if candidate.Status == models.CandidateStatusHired && h.insights != nil {
		h.insights.GenerateAsync(candidate.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidate)
}

func (h *CandidateHandler) logActivity(kind, description string, r *http.Request, candidateID int) {
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
