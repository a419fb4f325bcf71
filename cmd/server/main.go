package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"talent-track/api/rest/handlers"
	"talent-track/api/rest/routes"
	"talent-track/config"
	"talent-track/core/approval"
	"talent-track/core/assistant"
	"talent-track/core/insights"
	"talent-track/core/repository"
	"talent-track/core/status"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/llms"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	cfg := config.Load()

	// Initialize storage
	store, err := repository.NewStore(cfg.DBDir)
	if err != nil {
		log.Fatalf("Failed to open db directory: %v", err)
	}
	log.Printf("Collection store ready at %s", cfg.DBDir)

	// Initialize workflow configuration
	workflow, err := approval.LoadWorkflow(cfg.WorkflowConfig)
	if err != nil {
		log.Fatalf("Failed to load workflow config: %v", err)
	}

	// Initialize engines
	statusEngine := status.NewEngine()
	approvalEngine := approval.NewEngine(workflow)

	// Initialize assistant model (optional)
	var model llms.Model
	if cfg.GoogleAPIKey != "" {
		model, err = assistant.NewGoogleModel(context.Background(), cfg.GoogleAPIKey, cfg.AssistantModel)
		if err != nil {
			log.Printf("Assistant model unavailable: %v", err)
			model = nil
		} else {
			log.Printf("Assistant model ready (%s)", cfg.AssistantModel)
		}
	} else {
		log.Println("GOOGLE_API_KEY not set, assistant disabled")
	}

	jobRepo := repository.NewJobRepository(store)
	candidateRepo := repository.NewCandidateRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)

	history := assistant.NewHistory(store)
	chat := assistant.New(model, history, jobRepo, candidateRepo, notificationRepo, statusEngine)
	insightsGen := insights.NewGenerator(model, candidateRepo)

	// Setup routes
	r := mux.NewRouter()
	routes.SetupRoutes(r, store, statusEngine, approvalEngine, chat, history, insightsGen)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
