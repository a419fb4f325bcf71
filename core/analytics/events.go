package analytics

import (
	"sort"
	"strings"
	"time"

	"talent-track/core/models"
)

// Event is one upcoming item on the dashboard calendar
type Event struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Name        string `json:"name"`
	JobTitle    string `json:"job_title,omitempty"`
	CandidateID int    `json:"candidate_id,omitempty"`
	JobID       string `json:"job_id,omitempty"`
}

// Event types
const (
	EventInterview  = "Interview"
	EventApproval   = "Approval"
	EventOnboarding = "Onboarding"
	EventJob        = "Job"
)

// UpcomingEvents scans the collections for future-dated items: scheduled
// interviews, candidates awaiting approval, onboarding starts, and
// future-dated postings. Sorted soonest first, capped at limit.
func UpcomingEvents(jobs []models.Job, candidates []models.Candidate, now time.Time, limit int) []Event {
	var events []Event

	for _, c := range candidates {
		if c.InterviewDate != "" {
			if dt, ok := parseDateTime(c.InterviewDate, c.InterviewTime); ok && !dt.Before(now) {
				events = append(events, Event{
					Type:        EventInterview,
					Date:        c.InterviewDate,
					Time:        c.InterviewTime,
					Name:        c.Name,
					JobTitle:    candidateTitle(c),
					CandidateID: c.ID,
				})
			}
		}

		if c.Status == models.CandidateStatusPendingApproval || c.Status == models.CandidateStatusSelected {
			events = append(events, Event{
				Type:        EventApproval,
				Date:        c.AppliedDate,
				Name:        c.Name,
				JobTitle:    candidateTitle(c),
				CandidateID: c.ID,
			})
		}

		if c.Status == models.CandidateStatusHired {
			if start := c.Onboarding["start_date"]; start != "" {
				if dt, ok := parseDateTime(start, ""); ok && !dt.Before(now) {
					events = append(events, Event{
						Type:        EventOnboarding,
						Date:        start,
						Name:        c.Name,
						JobTitle:    candidateTitle(c),
						CandidateID: c.ID,
					})
				}
			}
		}
	}

	for _, job := range jobs {
		if job.PostedAt == "" {
			continue
		}
		dt, ok := parsePosting(job.PostedAt)
		if !ok || dt.Before(now) {
			continue
		}
		date, tm := splitPosting(job.PostedAt)
		events = append(events, Event{
			Type:     EventJob,
			Date:     date,
			Time:     tm,
			Name:     job.JobTitle,
			JobTitle: job.JobTitle,
			JobID:    job.JobID,
		})
	}

	// Drop undated entries, then soonest first; unparsable dates sort last
	dated := events[:0]
	for _, ev := range events {
		if ev.Date != "" {
			dated = append(dated, ev)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return eventSortKey(dated[i]).Before(eventSortKey(dated[j]))
	})

	if limit > 0 && len(dated) > limit {
		dated = dated[:limit]
	}
	return dated
}

func eventSortKey(ev Event) time.Time {
	if dt, ok := parseDateTime(ev.Date, ev.Time); ok {
		return dt
	}
	return time.Unix(1<<62, 0)
}

func parseDateTime(date, clock string) (time.Time, bool) {
	if clock != "" {
		if dt, err := time.Parse(models.InterviewLayout, date+" "+clock); err == nil {
			return dt, true
		}
	}
	if dt, err := time.Parse(models.DateLayout, date); err == nil {
		return dt, true
	}
	return time.Time{}, false
}

func parsePosting(postedAt string) (time.Time, bool) {
	if dt, err := time.Parse(models.PostedAtLayout, postedAt); err == nil {
		return dt, true
	}
	if dt, err := time.Parse(models.DateLayout, postedAt); err == nil {
		return dt, true
	}
	return time.Time{}, false
}

func splitPosting(postedAt string) (date, clock string) {
	if i := strings.IndexByte(postedAt, ' '); i > 0 {
		return postedAt[:i], postedAt[i+1:]
	}
	return postedAt, ""
}

func candidateTitle(c models.Candidate) string {
	if c.JobTitle != "" {
		return c.JobTitle
	}
	return c.Position
}
