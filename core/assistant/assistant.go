package assistant

import (
	"context"
	"fmt"
	"strings"

	"talent-track/core/analytics"
	"talent-track/core/repository"
	"talent-track/core/status"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const historyTokenBudget = 4000

// Assistant answers natural-language questions over the hiring data. It
// snapshots the same collections the dashboards read and feeds them to the
// model as context; the engines never depend on it.
type Assistant struct {
	model         llms.Model
	history       *History
	jobs          *repository.JobRepository
	candidates    *repository.CandidateRepository
	notifications *repository.NotificationRepository
	statusEngine  *status.Engine
}

// New creates an assistant. model may be nil when no API key is configured;
// Chat then reports the assistant as unavailable instead of failing at boot.
func New(model llms.Model, history *History, jobs *repository.JobRepository, candidates *repository.CandidateRepository, notifications *repository.NotificationRepository, statusEngine *status.Engine) *Assistant {
	return &Assistant{
		model:         model,
		history:       history,
		jobs:          jobs,
		candidates:    candidates,
		notifications: notifications,
		statusEngine:  statusEngine,
	}
}

// NewGoogleModel builds the default Gemini-backed model client
func NewGoogleModel(ctx context.Context, apiKey, modelName string) (llms.Model, error) {
	return googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
}

// Available reports whether a model client is configured
func (a *Assistant) Available() bool {
	return a.model != nil
}

// Chat answers one user message and records both turns in the history
func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	if a.model == nil {
		return "", fmt.Errorf("assistant is not configured")
	}

	prompt, err := a.buildPrompt(message)
	if err != nil {
		return "", err
	}

	reply, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt)
	if err != nil {
		return "", fmt.Errorf("assistant model call: %w", err)
	}

	if err := a.history.Append(
		Message{Role: RoleUser, Content: message},
		Message{Role: RoleAssistant, Content: reply},
	); err != nil {
		return "", err
	}
	return reply, nil
}

// buildPrompt assembles the data context, recent conversation and the user
// question into one prompt
func (a *Assistant) buildPrompt(message string) (string, error) {
	jobs, err := a.jobs.List()
	if err != nil {
		return "", err
	}
	candidates, err := a.candidates.List()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are the HR assistant for an applicant tracking system. ")
	b.WriteString("Answer questions using only the data snapshot below. ")
	b.WriteString("Be concise and factual; if the data does not answer the question, say so.\n\n")

	b.WriteString("=== DATA SNAPSHOT ===\n")
	fmt.Fprintf(&b, "Jobs: %d, Candidates: %d, Pending approvals: %d\n",
		len(jobs), len(candidates), len(analytics.PendingApprovals(candidates)))

	agg := a.statusEngine.PaceScore(jobs, candidates)
	fmt.Fprintf(&b, "Overall hiring pace: %s (score %.1f over %d jobs)\n\n", agg.Rating, agg.Score, agg.JobsEvaluated)

	b.WriteString("Job postings:\n")
	for _, job := range jobs {
		derived := a.statusEngine.DeriveStatus(job, candidates)
		fmt.Fprintf(&b, "- [%s] %s (%s): %d openings, posted %s, status %s\n",
			job.JobID, job.JobTitle, job.Department, job.JobOpenings.IntOr(0), job.PostedAt, derived)
	}

	b.WriteString("\nCandidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "- #%d %s, %s, status %s", c.ID, c.Name, c.Position, c.Status)
		if c.JobID != "" {
			fmt.Fprintf(&b, ", job %s", c.JobID)
		}
		b.WriteString("\n")
	}

	history, err := a.history.Load()
	if err != nil {
		return "", err
	}
	if recent := Recent(history, historyTokenBudget); len(recent) > 0 {
		b.WriteString("\n=== CONVERSATION SO FAR ===\n")
		for _, m := range recent {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	}

	b.WriteString("\n=== QUESTION ===\n")
	b.WriteString(message)
	return b.String(), nil
}
