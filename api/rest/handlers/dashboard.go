package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"talent-track/core/analytics"
	"talent-track/core/repository"
	"talent-track/core/status"
)

// DashboardHandler handles dashboard API requests
type DashboardHandler struct {
	jobRepo       *repository.JobRepository
	candidateRepo *repository.CandidateRepository
	userRepo      *repository.UserRepository
	activityRepo  *repository.ActivityRepository
	statusEngine  *status.Engine
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	jobRepo *repository.JobRepository,
	candidateRepo *repository.CandidateRepository,
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	statusEngine *status.Engine,
) *DashboardHandler {
	return &DashboardHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		userRepo:      userRepo,
		activityRepo:  activityRepo,
		statusEngine:  statusEngine,
	}
}

// GetMetrics handles GET /v1/dashboard/metrics
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobRepo.List()
	if err != nil {
		http.Error(w, "Failed to load jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	candidates, err := h.candidateRepo.List()
	if err != nil {
		http.Error(w, "Failed to load candidates: "+err.Error(), http.StatusInternalServerError)
		return
	}
	users, err := h.userRepo.List()
	if err != nil {
		http.Error(w, "Failed to load users: "+err.Error(), http.StatusInternalServerError)
		return
	}

	metrics := analytics.BuildMetrics(h.statusEngine, jobs, candidates, users)
	pace := h.statusEngine.PaceScore(jobs, candidates)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"metrics":     metrics,
		"hiring_pace": pace,
	})
}

// GetHiringPace handles GET /v1/dashboard/hiring-pace. Returns the per-job
// pace rows and the dashboard-wide aggregate; the two use different scales
// on purpose.
func (h *DashboardHandler) GetHiringPace(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobRepo.List()
	if err != nil {
		http.Error(w, "Failed to load jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	candidates, err := h.candidateRepo.List()
	if err != nil {
		http.Error(w, "Failed to load candidates: "+err.Error(), http.StatusInternalServerError)
		return
	}

	report := h.statusEngine.PaceReport(jobs, candidates)
	aggregate := h.statusEngine.PaceScore(jobs, candidates)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":     report,
		"aggregate": aggregate,
	})
}

// GetEvents handles GET /v1/dashboard/events
func (h *DashboardHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 {
			limit = n
		}
	}

	jobs, err := h.jobRepo.List()
	if err != nil {
		http.Error(w, "Failed to load jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	candidates, err := h.candidateRepo.List()
	if err != nil {
		http.Error(w, "Failed to load candidates: "+err.Error(), http.StatusInternalServerError)
		return
	}

	events := analytics.UpcomingEvents(jobs, candidates, time.Now(), limit)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": events,
	})
}

// GetActivity handles GET /v1/dashboard/activity
func (h *DashboardHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.activityRepo.List(limit)
	if err != nil {
		http.Error(w, "Failed to load activity: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": entries,
	})
}
