package models_test

import (
	"encoding/json"
	"testing"

	"talent-track/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	cases := []struct {
		in    string
		value int
		valid bool
	}{
		{`30`, 30, true},
		{`"30"`, 30, true},
		{`"2.0"`, 2, true},
		{`2.5`, 2, true},
		{`null`, 0, false},
		{`"N/A"`, 0, false},
		{`""`, 0, false},
	}
	for _, tc := range cases {
		var f models.FlexInt
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), "input %s", tc.in)
		assert.Equal(t, tc.valid, f.Valid, "input %s", tc.in)
		assert.Equal(t, tc.value, f.IntOr(0), "input %s", tc.in)
	}
}

func TestFlexInt_IntOrDefault(t *testing.T) {
	assert.Equal(t, 30, models.FlexInt{}.IntOr(30))
	assert.Equal(t, 0, models.NewFlexInt(0).IntOr(30))
}

func TestFlexInt_Marshal(t *testing.T) {
	data, err := json.Marshal(models.NewFlexInt(45))
	require.NoError(t, err)
	assert.Equal(t, "45", string(data))

	data, err = json.Marshal(models.FlexInt{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFlexString_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"job-1"`, "job-1"},
		{`17`, "17"},
		{`null`, ""},
	}
	for _, tc := range cases {
		var f models.FlexString
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), "input %s", tc.in)
		assert.Equal(t, tc.want, f.String(), "input %s", tc.in)
	}
}

func TestCandidate_UnmarshalLegacyRecord(t *testing.T) {
	raw := `{
		"id": 7,
		"name": "Nino Beridze",
		"job_id": 3,
		"position": "SP3D Designer",
		"status": "Hired",
		"onboarding": {"documents": "Completed"},
		"approval_history": [
			{"step": 1, "approved_by_role": "Discipline Manager", "is_final": false}
		]
	}`

	var c models.Candidate
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, 7, c.ID)
	assert.Equal(t, "3", c.JobID.String())
	assert.Equal(t, models.OnboardingCompleted, c.Onboarding["documents"])
	require.Len(t, c.ApprovalHistory, 1)
	assert.Equal(t, "Discipline Manager", c.ApprovalHistory[0].ApprovedByRole)
}

func TestJob_UnmarshalLooseTypes(t *testing.T) {
	raw := `{
		"job_id": "job-1",
		"job_title": "Piping Engineer",
		"job_lead_time": "45",
		"job_openings": "abc",
		"posted_at": "2025-05-01 09:30:00"
	}`

	var j models.Job
	require.NoError(t, json.Unmarshal([]byte(raw), &j))

	assert.Equal(t, 45, j.JobLeadTime.IntOr(30))
	assert.False(t, j.JobOpenings.Valid)
	assert.Equal(t, 0, j.JobOpenings.IntOr(0))
}
