package status

import (
	"strings"
	"time"

	"talent-track/core/models"
)

// Hiring pace classifications
const (
	PaceExcellent  = "Excellent"
	PaceGood       = "Good"
	PaceAdequate   = "Adequate"
	PaceInadequate = "Inadequate"
)

// NoApplicants is the displayed candidate status for jobs with no pipeline
const NoApplicants = "No applicants"

// PaceDetail is one row of the hiring pace report
type PaceDetail struct {
	JobID           string `json:"job_id"`
	JobTitle        string `json:"job_title"`
	Department      string `json:"department"`
	PostedAt        string `json:"posted_at"`
	WeeksElapsed    int    `json:"weeks_elapsed"`
	StagesCompleted int    `json:"stages_completed"`
	CandidateStatus string `json:"candidate_status"`
	Pace            string `json:"pace"`
	ApplicantsCount int    `json:"applicants_count"`
}

// AggregatePace is the dashboard-wide pace score. It uses a coarser point
// scale than the per-job classification; the two scales feed different views
// and are deliberately not unified.
type AggregatePace struct {
	Score         float64 `json:"score"`
	Rating        string  `json:"rating"`
	JobsEvaluated int     `json:"jobs_evaluated"`
}

// StageCount scores a candidate's pipeline progress 0-5 by cumulative
// milestone membership. The sets are additive checks, not exclusive tiers:
// a Hired candidate passes every earlier membership test.
func StageCount(c models.Candidate) int {
	s := strings.ToLower(strings.TrimSpace(c.Status))
	stages := 0
	if inSet(s, "new", "shortlisted", "interview scheduled", "interviewed", "pending approval", "approved", "selected", "hired") {
		stages++
	}
	if inSet(s, "interviewed", "pending approval", "approved", "selected", "hired") {
		stages++
	}
	if inSet(s, "approved", "selected", "hired") {
		stages++
	}
	if s == "hired" {
		stages++
		for _, v := range c.Onboarding {
			if v == models.OnboardingCompleted {
				stages++
				break
			}
		}
	}
	return stages
}

// HiringPace classifies how well one posting is pacing. ok is false when the
// job is not evaluable: explicitly closed/filled/cancelled, no parsable
// posting date, or younger than one week.
func (e *Engine) HiringPace(job models.Job, jobCandidates []models.Candidate) (PaceDetail, bool) {
	stored := strings.ToLower(strings.TrimSpace(job.Status))
	if stored == "closed" || stored == "filled" || stored == "cancelled" {
		return PaceDetail{}, false
	}

	postedDate, ok := parsePostedDate(job.PostedAt)
	if !ok {
		return PaceDetail{}, false
	}

	weeks := weeksElapsed(e.now(), postedDate)
	if weeks < 1 {
		return PaceDetail{}, false
	}

	maxStages := 0
	candidateStatus := NoApplicants
	for _, c := range jobCandidates {
		if stages := StageCount(c); stages > maxStages {
			maxStages = stages
			candidateStatus = titleCase(c.Status)
		}
	}

	return PaceDetail{
		JobID:           job.JobID,
		JobTitle:        job.JobTitle,
		Department:      department(job),
		PostedAt:        datePart(job.PostedAt),
		WeeksElapsed:    weeks,
		StagesCompleted: maxStages,
		CandidateStatus: candidateStatus,
		Pace:            classifyPace(weeks, maxStages),
		ApplicantsCount: len(jobCandidates),
	}, true
}

// classifyPace is the per-job threshold table on (weeks elapsed, max stage)
func classifyPace(weeks, maxStages int) string {
	switch {
	case weeks <= 2:
		if maxStages >= 3 {
			return PaceExcellent
		}
		if maxStages >= 2 {
			return PaceGood
		}
		return PaceAdequate
	case weeks <= 4:
		if maxStages >= 4 {
			return PaceGood
		}
		if maxStages >= 3 {
			return PaceAdequate
		}
	case weeks <= 10:
		if maxStages >= 5 {
			return PaceGood
		}
		if maxStages >= 4 {
			return PaceAdequate
		}
	default:
		if maxStages >= 5 {
			return PaceAdequate
		}
	}
	return PaceInadequate
}

// PaceReport classifies every evaluable job
func (e *Engine) PaceReport(jobs []models.Job, candidates []models.Candidate) []PaceDetail {
	var report []PaceDetail
	for _, job := range jobs {
		detail, ok := e.HiringPace(job, CandidatesForJob(job.JobID, candidates))
		if ok {
			report = append(report, detail)
		}
	}
	return report
}

// PaceScore averages a coarser 0-3 point scale across every evaluable job
// and buckets the mean at 2.0 / 1.0. Jobs with no candidates contribute by
// elapsed time alone.
func (e *Engine) PaceScore(jobs []models.Job, candidates []models.Candidate) AggregatePace {
	total := 0
	evaluated := 0

	for _, job := range jobs {
		stored := strings.ToLower(strings.TrimSpace(job.Status))
		if stored == "closed" || stored == "filled" || stored == "cancelled" {
			continue
		}
		postedDate, ok := parsePostedDate(job.PostedAt)
		if !ok {
			continue
		}
		weeks := weeksElapsed(e.now(), postedDate)
		if weeks < 1 {
			continue
		}

		jobCandidates := CandidatesForJob(job.JobID, candidates)
		maxStages := 0
		for _, c := range jobCandidates {
			if stages := StageCount(c); stages > maxStages {
				maxStages = stages
			}
		}

		total += pacePoints(weeks, maxStages, len(jobCandidates))
		evaluated++
	}

	agg := AggregatePace{JobsEvaluated: evaluated}
	if evaluated == 0 {
		agg.Rating = PaceAdequate
		return agg
	}
	agg.Score = float64(total) / float64(evaluated)
	switch {
	case agg.Score >= 2.0:
		agg.Rating = PaceGood
	case agg.Score >= 1.0:
		agg.Rating = PaceAdequate
	default:
		agg.Rating = PaceInadequate
	}
	return agg
}

func pacePoints(weeks, maxStages, applicants int) int {
	if applicants == 0 {
		switch {
		case weeks < 2:
			return 2
		case weeks < 4:
			return 1
		default:
			return 0
		}
	}
	switch {
	case weeks <= 2:
		if maxStages >= 3 {
			return 3
		}
		if maxStages >= 2 {
			return 2
		}
		return 1
	case weeks <= 4:
		if maxStages >= 4 {
			return 3
		}
		if maxStages >= 3 {
			return 2
		}
	case weeks <= 10:
		if maxStages >= 5 {
			return 3
		}
		if maxStages >= 4 {
			return 2
		}
	default:
		if maxStages >= 5 {
			return 1
		}
	}
	return 0
}

func weeksElapsed(now, posted time.Time) int {
	days := int(now.Sub(posted).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

// parsePostedDate reads only the date part of a posting timestamp
func parsePostedDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(models.DateLayout, datePart(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func datePart(postedAt string) string {
	if i := strings.IndexByte(postedAt, ' '); i > 0 {
		return postedAt[:i]
	}
	return postedAt
}

func department(job models.Job) string {
	if job.Department == "" {
		return "Unknown"
	}
	return job.Department
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func inSet(s string, set ...string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
