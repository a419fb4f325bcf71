package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"talent-track/core/models"
	"talent-track/core/repository"
	"talent-track/core/status"

	"github.com/gorilla/mux"
)

// JobHandler handles job posting HTTP requests
type JobHandler struct {
	store         *repository.Store
	jobRepo       *repository.JobRepository
	candidateRepo *repository.CandidateRepository
	activityRepo  *repository.ActivityRepository
	statusEngine  *status.Engine
}

// NewJobHandler creates a new job handler
func NewJobHandler(
	store *repository.Store,
	jobRepo *repository.JobRepository,
	candidateRepo *repository.CandidateRepository,
	activityRepo *repository.ActivityRepository,
	statusEngine *status.Engine,
) *JobHandler {
	return &JobHandler{
		store:         store,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		activityRepo:  activityRepo,
		statusEngine:  statusEngine,
	}
}

// CreateJobRequest represents the request to create a posting
type CreateJobRequest struct {
	JobTitle    string `json:"job_title"`
	Department  string `json:"department"`
	Description string `json:"description"`
	JobLeadTime *int   `json:"job_lead_time"`
	JobOpenings *int   `json:"job_openings"`
}

// CreateJob handles POST /v1/jobs
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.JobTitle == "" {
		http.Error(w, "job_title is required", http.StatusBadRequest)
		return
	}

	job := models.Job{
		JobTitle:    req.JobTitle,
		Department:  req.Department,
		Description: req.Description,
	}
	if req.JobLeadTime != nil {
		job.JobLeadTime = models.NewFlexInt(*req.JobLeadTime)
	}
	if req.JobOpenings != nil {
		job.JobOpenings = models.NewFlexInt(*req.JobOpenings)
	}

	if err := h.jobRepo.Create(&job); err != nil {
		http.Error(w, "Failed to create job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.logActivity("job", fmt.Sprintf("Job posting %s (%s) created", job.JobTitle, job.JobID), r, job.JobID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id":    job.JobID,
		"posted_at": job.PostedAt,
		"status":    job.Status,
	})
}

// ListJobs handles GET /v1/jobs. Every listing recomputes derived statuses
// and persists the collection only when something changed.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, candidates, err := h.refreshStatuses()
	if err != nil {
		http.Error(w, "Failed to list jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	departmentFilter := r.URL.Query().Get("department")

	items := make([]map[string]interface{}, 0, len(jobs))
	for _, job := range jobs {
		if departmentFilter != "" && job.Department != departmentFilter {
			continue
		}
		jobCandidates := status.CandidatesForJob(job.JobID, candidates)
		items = append(items, jobItem(job, len(jobCandidates)))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": items,
	})
}

// GetJob handles GET /v1/jobs/{id}
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	jobs, candidates, err := h.refreshStatuses()
	if err != nil {
		http.Error(w, "Failed to load job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	for _, job := range jobs {
		if job.JobID != jobID {
			continue
		}
		jobCandidates := status.CandidatesForJob(job.JobID, candidates)
		response := jobItem(job, len(jobCandidates))
		response["description"] = job.Description
		if pace, ok := h.statusEngine.HiringPace(job, jobCandidates); ok {
			response["hiring_pace"] = pace
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
		return
	}

	http.Error(w, "Job not found", http.StatusNotFound)
}

// NormalizeStatuses handles POST /v1/admin/jobs/normalize-status, rewriting
// blank stored statuses to Open
func (h *JobHandler) NormalizeStatuses(w http.ResponseWriter, r *http.Request) {
	unlock := h.store.Lock(repository.JobsFile)
	defer unlock()

	jobs, err := h.jobRepo.List()
	if err != nil {
		http.Error(w, "Failed to load jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	updated := 0
	for i := range jobs {
		if jobs[i].Status == "" {
			jobs[i].Status = models.JobStatusOpen
			updated++
		}
	}
	if updated > 0 {
		if err := h.jobRepo.Save(jobs); err != nil {
			http.Error(w, "Failed to save jobs: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"updated": updated,
	})
}

// refreshStatuses is the pull-based status recomputation: derive every job's
// status against the candidate pool and rewrite the whole collection on any
// mismatch. Idempotent; no "last computed at" is stored.
func (h *JobHandler) refreshStatuses() ([]models.Job, []models.Candidate, error) {
	unlock := h.store.Lock(repository.JobsFile)
	defer unlock()

	jobs, err := h.jobRepo.List()
	if err != nil {
		return nil, nil, err
	}
	candidates, err := h.candidateRepo.List()
	if err != nil {
		return nil, nil, err
	}

	changed := false
	for i := range jobs {
		derived := h.statusEngine.DeriveStatus(jobs[i], candidates)
		if status.StatusChanged(jobs[i].Status, derived) {
			jobs[i].Status = derived
			changed = true
		}
	}
	if changed {
		if err := h.jobRepo.Save(jobs); err != nil {
			return nil, nil, err
		}
	}
	return jobs, candidates, nil
}

func (h *JobHandler) logActivity(kind, description string, r *http.Request, relatedID string) {
	entry := models.ActivityEntry{
		Type:        kind,
		Description: description,
		User:        actorUser(r),
		RelatedID:   models.FlexString(relatedID),
	}
	if err := h.activityRepo.Append(entry); err != nil {
		// Activity logging never fails a request
		log.Printf("Activity log write failed: %v", err)
	}
}

func jobItem(job models.Job, applicants int) map[string]interface{} {
	return map[string]interface{}{
		"job_id":        job.JobID,
		"job_title":     job.JobTitle,
		"department":    job.Department,
		"posted_at":     job.PostedAt,
		"job_lead_time": job.JobLeadTime.IntOr(status.DefaultLeadTimeDays),
		"job_openings":  job.JobOpenings.IntOr(status.DefaultOpenings),
		"status":        job.Status,
		"applicants":    applicants,
	}
}
