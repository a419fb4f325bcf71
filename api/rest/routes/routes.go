package routes

import (
	"talent-track/api/rest/handlers"
	"talent-track/core/approval"
	"talent-track/core/assistant"
	"talent-track/core/insights"
	"talent-track/core/repository"
	"talent-track/core/status"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	r *mux.Router,
	store *repository.Store,
	statusEngine *status.Engine,
	approvalEngine *approval.Engine,
	chat *assistant.Assistant,
	history *assistant.History,
	insightsGen *insights.Generator,
) {
	jobRepo := repository.NewJobRepository(store)
	candidateRepo := repository.NewCandidateRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)
	userRepo := repository.NewUserRepository(store)
	activityRepo := repository.NewActivityRepository(store)

	jobHandler := handlers.NewJobHandler(store, jobRepo, candidateRepo, activityRepo, statusEngine)
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, activityRepo, insightsGen)
	approvalHandler := handlers.NewApprovalHandler(store, candidateRepo, notificationRepo, activityRepo, approvalEngine)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	dashboardHandler := handlers.NewDashboardHandler(jobRepo, candidateRepo, userRepo, activityRepo, statusEngine)
	assistantHandler := handlers.NewAssistantHandler(chat, history)

	api := r.PathPrefix("/v1").Subrouter()

	// Job postings
	api.HandleFunc("/jobs", jobHandler.CreateJob).Methods("POST")
	api.HandleFunc("/jobs", jobHandler.ListJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}", jobHandler.GetJob).Methods("GET")
	api.HandleFunc("/admin/jobs/normalize-status", jobHandler.NormalizeStatuses).Methods("POST")

	// Candidate pipeline
	api.HandleFunc("/candidates", candidateHandler.CreateCandidate).Methods("POST")
	api.HandleFunc("/candidates", candidateHandler.ListCandidates).Methods("GET")
	api.HandleFunc("/candidates/{id}", candidateHandler.GetCandidate).Methods("GET")
	api.HandleFunc("/candidates/{id}/status", candidateHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/candidates/{id}/interview", candidateHandler.ScheduleInterview).Methods("POST")
	api.HandleFunc("/candidates/{id}/onboarding", candidateHandler.UpdateOnboarding).Methods("PATCH")

	// Approval workflow
	api.HandleFunc("/approvals/send", approvalHandler.SendForApproval).Methods("POST")
	api.HandleFunc("/approvals/act", approvalHandler.Act).Methods("POST")
	api.HandleFunc("/candidates/{id}/approval-flow", approvalHandler.GetFlow).Methods("GET")

	// Notifications
	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")

	// Dashboard
	api.HandleFunc("/dashboard/metrics", dashboardHandler.GetMetrics).Methods("GET")
	api.HandleFunc("/dashboard/hiring-pace", dashboardHandler.GetHiringPace).Methods("GET")
	api.HandleFunc("/dashboard/events", dashboardHandler.GetEvents).Methods("GET")
	api.HandleFunc("/dashboard/activity", dashboardHandler.GetActivity).Methods("GET")

	// Assistant
	api.HandleFunc("/assistant/chat", assistantHandler.Chat).Methods("POST")
	api.HandleFunc("/assistant/history", assistantHandler.GetHistory).Methods("GET")
	api.HandleFunc("/assistant/history", assistantHandler.ClearHistory).Methods("DELETE")
}
