package models

// Candidate represents an applicant moving through the hiring pipeline
type Candidate struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	JobID         FlexString `json:"job_id"`
	JobTitle      string     `json:"job_title,omitempty"`
	Position      string     `json:"position"`
	Status        string     `json:"status"`
	AppliedDate   string     `json:"applied_date,omitempty"`
	InterviewDate string     `json:"interview_date,omitempty"`
	InterviewTime string     `json:"interview_time,omitempty"`

	// Approval workflow audit fields, written only by the approval engine
	ApprovalHistory        []ApprovalStep `json:"approval_history,omitempty"`
	SentForApprovalAt      string         `json:"sent_for_approval_at,omitempty"`
	SentForApprovalBy      string         `json:"sent_for_approval_by,omitempty"`
	ApprovalRequestMessage string         `json:"approval_request_message,omitempty"`
	FinalApprovedBy        string         `json:"final_approved_by,omitempty"`
	FinalApprovedAt        string         `json:"final_approved_at,omitempty"`
	FinalApprovalComment   string         `json:"final_approval_comment,omitempty"`
	RejectionReason        string         `json:"rejection_reason,omitempty"`
	RejectedBy             string         `json:"rejected_by,omitempty"`
	RejectedAt             string         `json:"rejected_at,omitempty"`
	HoldReason             string         `json:"hold_reason,omitempty"`
	HoldBy                 string         `json:"hold_by,omitempty"`
	HoldAt                 string         `json:"hold_at,omitempty"`

	// Onboarding checklist for hired candidates: step name -> "Pending"/"Completed"
	Onboarding map[string]string `json:"onboarding,omitempty"`

	// AI-generated probation summary, written only by the background
	// insight generator. Its failures never surface here.
	ProbationInsight   string `json:"probation_insight,omitempty"`
	ProbationInsightAt string `json:"probation_insight_at,omitempty"`
}

// ApprovalStep is one append-only entry in a candidate's approval history
type ApprovalStep struct {
	Step           int    `json:"step"`
	ApprovedByRole string `json:"approved_by_role"`
	ApprovedByUser string `json:"approved_by_user"`
	ApprovedAt     string `json:"approved_at"`
	Comment        string `json:"comment,omitempty"`
	IsFinal        bool   `json:"is_final"`
}

// Candidate statuses. Resigned/Fired are terminal states managed outside the
// approval workflow.
const (
	CandidateStatusNew                = "New"
	CandidateStatusShortlisted        = "Shortlisted"
	CandidateStatusInterviewScheduled = "Interview Scheduled"
	CandidateStatusInterviewed        = "Interviewed"
	CandidateStatusPendingApproval    = "Pending Approval"
	CandidateStatusOnHold             = "On Hold"
	CandidateStatusRejected           = "Rejected"
	CandidateStatusApproved           = "Approved"
	CandidateStatusSelected           = "Selected"
	CandidateStatusHired              = "Hired"
	CandidateStatusResigned           = "Resigned"
	CandidateStatusFired              = "Fired"
)

// OnboardingCompleted is the value marking an onboarding step as done
const OnboardingCompleted = "Completed"
