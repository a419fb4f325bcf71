package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"talent-track/core/models"
	"talent-track/core/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJobEndpoint(t *testing.T) {
	s := newTestServer(t)
	lead := 45
	openings := 2

	rec := s.do(t, http.MethodPost, "/v1/jobs", map[string]interface{}{
		"job_title":     "Piping Engineer",
		"department":    "Engineering",
		"job_lead_time": lead,
		"job_openings":  openings,
	}, asRole("HR"))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["job_id"])
	assert.Equal(t, models.JobStatusOpen, resp["status"])
	assert.NotEmpty(t, resp["posted_at"])
}

func TestCreateJobEndpoint_RequiresTitle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/jobs", map[string]interface{}{
		"department": "Engineering",
	}, asRole("HR"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListJobsEndpoint_RecomputesAndPersistsStatus(t *testing.T) {
	s := newTestServer(t)
	jobRepo := repository.NewJobRepository(s.store)

	// Stored open but past its lead time
	expired := models.Job{
		JobID:       "job-expired",
		JobTitle:    "Old Role",
		PostedAt:    time.Now().AddDate(0, 0, -40).Format(models.PostedAtLayout),
		JobLeadTime: models.NewFlexInt(30),
		JobOpenings: models.NewFlexInt(3),
		Status:      models.JobStatusOpen,
	}
	fresh := models.Job{
		JobID:       "job-fresh",
		JobTitle:    "New Role",
		PostedAt:    time.Now().AddDate(0, 0, -5).Format(models.PostedAtLayout),
		JobLeadTime: models.NewFlexInt(30),
		JobOpenings: models.NewFlexInt(3),
		Status:      models.JobStatusOpen,
	}
	require.NoError(t, jobRepo.Save([]models.Job{expired, fresh}))

	rec := s.do(t, http.MethodGet, "/v1/jobs", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)

	byID := map[string]string{}
	for _, item := range resp.Items {
		byID[item["job_id"].(string)] = item["status"].(string)
	}
	assert.Equal(t, models.JobStatusClosed, byID["job-expired"])
	assert.Equal(t, models.JobStatusOpen, byID["job-fresh"])

	// The recomputed status was written back
	stored, err := jobRepo.Get("job-expired")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, stored.Status)
}

func TestGetJobEndpoint(t *testing.T) {
	s := newTestServer(t)
	jobRepo := repository.NewJobRepository(s.store)
	job := models.Job{
		JobTitle:    "Piping Engineer",
		Description: "Detail design work",
		PostedAt:    time.Now().AddDate(0, 0, -14).Format(models.PostedAtLayout),
		JobLeadTime: models.NewFlexInt(60),
		JobOpenings: models.NewFlexInt(2),
	}
	require.NoError(t, jobRepo.Create(&job))
	s.seedCandidate(t, models.Candidate{Name: "Nino", JobID: models.FlexString(job.JobID), Status: models.CandidateStatusInterviewed})

	rec := s.do(t, http.MethodGet, "/v1/jobs/"+job.JobID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Detail design work", resp["description"])
	assert.Equal(t, float64(1), resp["applicants"])
	assert.Contains(t, resp, "hiring_pace")

	rec = s.do(t, http.MethodGet, "/v1/jobs/ghost", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNormalizeStatusesEndpoint(t *testing.T) {
	s := newTestServer(t)
	jobRepo := repository.NewJobRepository(s.store)
	require.NoError(t, jobRepo.Save([]models.Job{
		{JobID: "a", Status: ""},
		{JobID: "b", Status: models.JobStatusClosed},
		{JobID: "c", Status: ""},
	}))

	rec := s.do(t, http.MethodPost, "/v1/admin/jobs/normalize-status", nil, asRole("HR"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp["updated"])

	stored, err := jobRepo.Get("a")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusOpen, stored.Status)
}
