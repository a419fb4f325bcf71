package insights

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"talent-track/core/models"
	"talent-track/core/repository"

	"github.com/tmc/langchaingo/llms"
)

const generateTimeout = 2 * time.Minute

// Generator produces AI probation/onboarding summaries for hired candidates.
// Generation is fire-and-forget: it runs on its own goroutine, swallows every
// failure, and must never block approval or status operations.
type Generator struct {
	model      llms.Model
	candidates *repository.CandidateRepository
}

// NewGenerator creates a probation insight generator. model may be nil, in
// which case generation is a no-op.
func NewGenerator(model llms.Model, candidates *repository.CandidateRepository) *Generator {
	return &Generator{model: model, candidates: candidates}
}

// GenerateAsync kicks off insight generation for a candidate in the
// background. Errors are logged and dropped.
func (g *Generator) GenerateAsync(candidateID int) {
	if g.model == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		if err := g.generate(ctx, candidateID); err != nil {
			log.Printf("Probation insight for candidate %d skipped: %v", candidateID, err)
		}
	}()
}

func (g *Generator) generate(ctx context.Context, candidateID int) error {
	candidate, err := g.candidates.Get(candidateID)
	if err != nil {
		return err
	}

	summary, err := llms.GenerateFromSinglePrompt(ctx, g.model, probationPrompt(*candidate))
	if err != nil {
		return err
	}

	candidate.ProbationInsight = strings.TrimSpace(summary)
	candidate.ProbationInsightAt = time.Now().Format(models.AuditTimeLayout)
	return g.candidates.Update(*candidate)
}

func probationPrompt(c models.Candidate) string {
	var b strings.Builder
	b.WriteString("You are an HR advisor. Write a short probation-period summary ")
	b.WriteString("for the onboarding progress below: two or three sentences, ")
	b.WriteString("noting completed steps and anything overdue.\n\n")
	fmt.Fprintf(&b, "Candidate: %s, position %s, status %s\n", c.Name, c.Position, c.Status)
	if len(c.Onboarding) == 0 {
		b.WriteString("Onboarding has not started.\n")
		return b.String()
	}
	b.WriteString("Onboarding steps:\n")
	for step, state := range c.Onboarding {
		fmt.Fprintf(&b, "- %s: %s\n", step, state)
	}
	return b.String()
}
