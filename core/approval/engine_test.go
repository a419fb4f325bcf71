package approval_test

import (
	"testing"
	"time"

	"talent-track/core/approval"
	"talent-track/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testApprovalEngine() *approval.Engine {
	return approval.NewEngine(nil, approval.WithClock(func() time.Time { return testNow }))
}

func designerCandidate() []models.Candidate {
	return []models.Candidate{{
		ID:       7,
		Name:     "Nino Beridze",
		JobID:    "job-1",
		Position: "SP3D Designer",
		Status:   models.CandidateStatusInterviewed,
	}}
}

func disciplineManagerCandidate() []models.Candidate {
	return []models.Candidate{{
		ID:       9,
		Name:     "Levan Gelashvili",
		JobID:    "job-2",
		Position: "Discipline Manager - Piping",
		Status:   models.CandidateStatusInterviewed,
	}}
}

func TestSendForApproval_RegularPath(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()

	res, err := engine.SendForApproval(candidates, nil, 7, "Strong interview feedback", approval.RoleHR, "hr.user")
	require.NoError(t, err)

	assert.Equal(t, models.CandidateStatusPendingApproval, candidates[0].Status)
	assert.Equal(t, "hr.user", candidates[0].SentForApprovalBy)
	assert.Equal(t, testNow.Format(models.AuditTimeLayout), candidates[0].SentForApprovalAt)
	assert.Equal(t, "Strong interview feedback", candidates[0].ApprovalRequestMessage)

	n := res.Notification
	assert.Equal(t, 1, n.ID)
	assert.Equal(t, models.NotificationApprovalRequest, n.Type)
	assert.Equal(t, models.NotificationStatusSent, n.Status)
	assert.Equal(t, approval.RoleDisciplineManager, n.ForRole)
	assert.Equal(t, approval.RoleHR, n.FromRole)
	assert.Equal(t, 1, n.StepNumber)
	assert.Equal(t, 3, n.TotalSteps)
}

func TestSendForApproval_SeniorPathStartsAtDepartmentManager(t *testing.T) {
	engine := testApprovalEngine()
	candidates := disciplineManagerCandidate()

	res, err := engine.SendForApproval(candidates, nil, 9, "Senior hire", approval.RoleHR, "hr.user")
	require.NoError(t, err)

	assert.Equal(t, approval.RoleDeptManagerMOE, res.Notification.ForRole)
	assert.Equal(t, 3, res.Notification.TotalSteps)
}

func TestSendForApproval_ActorFallsBackToRole(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()

	_, err := engine.SendForApproval(candidates, nil, 7, "", approval.RoleHR, "")
	require.NoError(t, err)

	assert.Equal(t, approval.RoleHR, candidates[0].SentForApprovalBy)
}

func TestSendForApproval_Errors(t *testing.T) {
	engine := testApprovalEngine()

	_, err := engine.SendForApproval(designerCandidate(), nil, 0, "", approval.RoleHR, "")
	assert.ErrorIs(t, err, approval.ErrInvalidRequest)

	_, err = engine.SendForApproval(designerCandidate(), nil, 42, "", approval.RoleHR, "")
	assert.ErrorIs(t, err, approval.ErrNotFound)
}

func TestSendForApproval_ResendCreatesSecondRequest(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()
	var notifications []models.Notification

	first, err := engine.SendForApproval(candidates, notifications, 7, "first", approval.RoleHR, "")
	require.NoError(t, err)
	notifications = append(notifications, first.Notification)

	second, err := engine.SendForApproval(candidates, notifications, 7, "second", approval.RoleHR, "")
	require.NoError(t, err)

	assert.Equal(t, 2, second.Notification.ID)
	assert.Equal(t, 1, second.Notification.StepNumber)
}

// Walks a designer through the full Discipline Manager -> Department Manager
// (MOE) -> Operation Manager chain.
func TestApproveCandidate_RegularChainEndToEnd(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()
	var notifications []models.Notification

	sent, err := engine.SendForApproval(candidates, notifications, 7, "Please approve", approval.RoleHR, "hr.user")
	require.NoError(t, err)
	notifications = append(notifications, sent.Notification)

	// Step 1: Discipline Manager approves
	res, err := engine.ApproveCandidate(candidates, notifications, 7, approval.ActionApprove, "Looks good", approval.RoleDisciplineManager, "dm.user")
	require.NoError(t, err)
	assert.False(t, res.FinalApproval)
	assert.Equal(t, models.NotificationStatusApproved, res.Acted.Status)
	assert.Equal(t, "dm.user", res.Acted.ApprovedBy)
	require.Len(t, res.Created, 2)
	assert.Equal(t, approval.RoleDeptManagerMOE, res.Created[0].ForRole)
	assert.Equal(t, 2, res.Created[0].StepNumber)
	assert.Equal(t, "Please approve", res.Created[0].Message)
	assert.Equal(t, approval.RoleHR, res.Created[1].ForRole)
	assert.Equal(t, models.NotificationApprovalUpdate, res.Created[1].Type)
	notifications = append(notifications, res.Created...)

	require.Len(t, candidates[0].ApprovalHistory, 1)
	assert.Equal(t, 1, candidates[0].ApprovalHistory[0].Step)
	assert.False(t, candidates[0].ApprovalHistory[0].IsFinal)
	assert.Equal(t, models.CandidateStatusPendingApproval, candidates[0].Status)

	// Step 2: MOP acts on the MOE-addressed request
	res, err = engine.ApproveCandidate(candidates, notifications, 7, approval.ActionApprove, "", approval.RoleDeptManagerMOP, "mop.user")
	require.NoError(t, err)
	assert.False(t, res.FinalApproval)
	require.Len(t, res.Created, 2)
	assert.Equal(t, approval.RoleOperationManager, res.Created[0].ForRole)
	assert.Equal(t, 3, res.Created[0].StepNumber)
	notifications = append(notifications, res.Created...)

	require.Len(t, candidates[0].ApprovalHistory, 2)
	assert.Equal(t, 2, candidates[0].ApprovalHistory[1].Step)
	assert.Equal(t, approval.RoleDeptManagerMOP, candidates[0].ApprovalHistory[1].ApprovedByRole)

	// Step 3: Operation Manager gives final approval
	res, err = engine.ApproveCandidate(candidates, notifications, 7, approval.ActionApprove, "Welcome aboard", approval.RoleOperationManager, "om.user")
	require.NoError(t, err)
	assert.True(t, res.FinalApproval)
	require.Len(t, res.Created, 1)
	assert.Equal(t, models.NotificationFinalApproval, res.Created[0].Type)
	assert.Equal(t, approval.RoleHR, res.Created[0].ForRole)
	assert.Equal(t, 3, res.Created[0].StepNumber)

	c := candidates[0]
	assert.Equal(t, models.CandidateStatusApproved, c.Status)
	assert.Equal(t, approval.RoleOperationManager, c.FinalApprovedBy)
	assert.Equal(t, testNow.Format(models.AuditTimeLayout), c.FinalApprovedAt)
	assert.Equal(t, "Welcome aboard", c.FinalApprovalComment)
	require.Len(t, c.ApprovalHistory, 3)
	assert.True(t, c.ApprovalHistory[2].IsFinal)
}

func TestApproveCandidate_SeniorChainEndsAtCEO(t *testing.T) {
	engine := testApprovalEngine()
	candidates := disciplineManagerCandidate()
	var notifications []models.Notification

	sent, err := engine.SendForApproval(candidates, notifications, 9, "Senior hire", approval.RoleHR, "")
	require.NoError(t, err)
	notifications = append(notifications, sent.Notification)

	res, err := engine.ApproveCandidate(candidates, notifications, 9, approval.ActionApprove, "", approval.RoleDeptManagerMOE, "")
	require.NoError(t, err)
	notifications = append(notifications, res.Created...)

	res, err = engine.ApproveCandidate(candidates, notifications, 9, approval.ActionApprove, "", approval.RoleOperationManager, "")
	require.NoError(t, err)
	assert.False(t, res.FinalApproval)
	assert.Equal(t, approval.RoleCEO, res.Created[0].ForRole)
	notifications = append(notifications, res.Created...)

	res, err = engine.ApproveCandidate(candidates, notifications, 9, approval.ActionApprove, "", approval.RoleCEO, "")
	require.NoError(t, err)
	assert.True(t, res.FinalApproval)
	assert.Equal(t, approval.RoleCEO, candidates[0].FinalApprovedBy)
}

func TestApproveCandidate_Reject(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()
	var notifications []models.Notification

	sent, err := engine.SendForApproval(candidates, notifications, 7, "", approval.RoleHR, "")
	require.NoError(t, err)
	notifications = append(notifications, sent.Notification)

	res, err := engine.ApproveCandidate(candidates, notifications, 7, approval.ActionReject, "Not a fit", approval.RoleDisciplineManager, "dm.user")
	require.NoError(t, err)

	assert.Empty(t, res.Created, "rejection must not advance the chain")
	assert.Equal(t, models.NotificationStatusRejected, res.Acted.Status)

	c := candidates[0]
	assert.Equal(t, models.CandidateStatusRejected, c.Status)
	assert.Equal(t, "Not a fit", c.RejectionReason)
	assert.Equal(t, approval.RoleDisciplineManager, c.RejectedBy)
	assert.Equal(t, testNow.Format(models.AuditTimeLayout), c.RejectedAt)
	assert.Empty(t, c.ApprovalHistory)
}

func TestApproveCandidate_Hold(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()
	var notifications []models.Notification

	sent, err := engine.SendForApproval(candidates, notifications, 7, "", approval.RoleHR, "")
	require.NoError(t, err)
	notifications = append(notifications, sent.Notification)

	res, err := engine.ApproveCandidate(candidates, notifications, 7, approval.ActionHold, "Await budget sign-off", approval.RoleDisciplineManager, "")
	require.NoError(t, err)

	assert.Empty(t, res.Created)
	assert.Equal(t, models.NotificationStatusOnHold, res.Acted.Status)
	assert.Equal(t, models.CandidateStatusOnHold, candidates[0].Status)
	assert.Equal(t, "Await budget sign-off", candidates[0].HoldReason)
	assert.Equal(t, approval.RoleDisciplineManager, candidates[0].HoldBy)
}

func TestApproveCandidate_Errors(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()

	_, err := engine.ApproveCandidate(candidates, nil, 7, "promote", "", approval.RoleHR, "")
	assert.ErrorIs(t, err, approval.ErrInvalidRequest)

	_, err = engine.ApproveCandidate(candidates, nil, 0, approval.ActionApprove, "", approval.RoleHR, "")
	assert.ErrorIs(t, err, approval.ErrInvalidRequest)

	_, err = engine.ApproveCandidate(candidates, nil, 42, approval.ActionApprove, "", approval.RoleHR, "")
	assert.ErrorIs(t, err, approval.ErrNotFound)

	// No pending request addressed to this role
	_, err = engine.ApproveCandidate(candidates, nil, 7, approval.ActionApprove, "", approval.RoleCEO, "")
	assert.ErrorIs(t, err, approval.ErrNotFound)
}

func TestApproveCandidate_RoleOutsidePathRejected(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()
	// A stray Sent notification addressed to the CEO, who is not on the
	// regular path
	notifications := []models.Notification{{
		ID:          1,
		CandidateID: 7,
		Type:        models.NotificationApprovalRequest,
		Status:      models.NotificationStatusSent,
		ForRole:     approval.RoleCEO,
		StepNumber:  1,
	}}

	_, err := engine.ApproveCandidate(candidates, notifications, 7, approval.ActionApprove, "", approval.RoleCEO, "")
	assert.ErrorIs(t, err, approval.ErrInvalidRequest)
}

func TestApproveCandidate_PicksLatestSentForRole(t *testing.T) {
	engine := testApprovalEngine()
	candidates := designerCandidate()
	notifications := []models.Notification{
		{ID: 1, CandidateID: 7, Status: models.NotificationStatusSent, ForRole: approval.RoleDisciplineManager, StepNumber: 1},
		{ID: 2, CandidateID: 7, Status: models.NotificationStatusSent, ForRole: approval.RoleDisciplineManager, StepNumber: 1},
	}

	res, err := engine.ApproveCandidate(candidates, notifications, 7, approval.ActionApprove, "", approval.RoleDisciplineManager, "")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Acted.ID)
	// The earlier duplicate stays Sent
	assert.Equal(t, models.NotificationStatusSent, notifications[0].Status)
}
