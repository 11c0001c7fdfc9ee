package domain

import "time"

type ApprovalRole string

const (
	RoleStaff   ApprovalRole = "staff"
	RoleManager ApprovalRole = "manager"
	RoleAdmin   ApprovalRole = "admin"
)

// SubStatus maps an approval role to the deal sub-status shown while that
// role's step is pending.
func (r ApprovalRole) SubStatus() DealSubStatus {
	switch r {
	case RoleManager:
		return SubStatusManagerReview
	case RoleAdmin:
		return SubStatusAdminReview
	default:
		return SubStatusStaffReview
	}
}

type ApprovalAction string

const (
	ActionApprove        ApprovalAction = "approve"
	ActionReject         ApprovalAction = "reject"
	ActionRequestChanges ApprovalAction = "request_changes"
	ActionEscalate       ApprovalAction = "escalate"
)

// WorkflowConditions gate workflow eligibility. Zero MaxValue means open-ended;
// empty Tiers/Territories means any.
type WorkflowConditions struct {
	MinValue    float64
	MaxValue    float64
	Tiers       []PartnerTier
	Territories []string
}

type ApprovalStep struct {
	StepNumber           int
	RequiredRole         ApprovalRole
	Required             bool
	AutoApproveThreshold *float64
}

type ApprovalWorkflow struct {
	ID          string
	Name        string
	Description string
	IsDefault   bool
	Priority    int
	Conditions  WorkflowConditions
	Steps       []ApprovalStep
	IsActive    bool
}

// AdminStep returns the first admin-role step, used as the escalation target.
func (w *ApprovalWorkflow) AdminStep() *ApprovalStep {
	for i := range w.Steps {
		if w.Steps[i].RequiredRole == RoleAdmin {
			return &w.Steps[i]
		}
	}
	return nil
}

// NextRequiredStep returns the first required step strictly after stepNumber.
func (w *ApprovalWorkflow) NextRequiredStep(stepNumber int) *ApprovalStep {
	for i := range w.Steps {
		if w.Steps[i].StepNumber > stepNumber && w.Steps[i].Required {
			return &w.Steps[i]
		}
	}
	return nil
}

// DealApproval is one step attempt. ApprovedAt nil marks the single unresolved
// row a deal may hold; the store enforces uniqueness.
type DealApproval struct {
	ID           string
	DealID       string
	WorkflowID   string
	StepNumber   int
	RequiredRole ApprovalRole
	AssignedTo   string
	ApproverID   string
	Action       ApprovalAction
	Comments     string
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}

type WorkflowRepository interface {
	ListActiveWorkflows() ([]*ApprovalWorkflow, error)
	GetWorkflowByID(workflowID string) (*ApprovalWorkflow, error)
}

type ApprovalRepository interface {
	CreateApproval(approval *DealApproval) error
	// GetCurrentApproval returns the single unresolved row for the deal,
	// highest step number first.
	GetCurrentApproval(dealID string) (*DealApproval, error)
	ResolveApproval(approvalID, approverID string, action ApprovalAction, comments string) error
	ListApprovalsByDeal(dealID string) ([]*DealApproval, error)
	// FindPendingByRole lists unresolved approvals whose required role matches.
	FindPendingByRole(role ApprovalRole) ([]*DealApproval, error)
}
