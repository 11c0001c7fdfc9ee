package workflow

import (
	"time"

	"github.com/partnerdesk/deal-service/internal/domain"
)

// DetermineWorkflow selects the workflow matching the deal's attributes and
// either auto-approves the deal or creates its first pending approval step.
func (uc *DefaultWorkflowUsecase) DetermineWorkflow(dealID string) (*DetermineResult, error) {
	deal, err := uc.dealRepo.GetDealByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status.IsTerminal() {
		return nil, domain.ErrDealTerminal
	}

	partner, err := uc.partnerRepo.GetPartnerByID(deal.PartnerID)
	if err != nil {
		return nil, err
	}

	wf, err := uc.selectWorkflow(deal, partner)
	if err != nil {
		return nil, err
	}

	// Auto-approval short-circuits the whole workflow: one terminal approval
	// row, no pending step.
	if step := autoApprovableStep(wf, deal.TotalValue); step != nil {
		if err := uc.autoApprove(deal, wf, step); err != nil {
			return nil, err
		}
		return &DetermineResult{WorkflowID: wf.ID, WorkflowName: wf.Name, AutoApproved: true}, nil
	}

	if err := uc.initialize(deal, wf); err != nil {
		return nil, err
	}
	return &DetermineResult{WorkflowID: wf.ID, WorkflowName: wf.Name, AutoApproved: false}, nil
}

// InitializeWorkflow creates the first pending step for an already selected
// workflow.
func (uc *DefaultWorkflowUsecase) InitializeWorkflow(dealID, workflowID string) error {
	deal, err := uc.dealRepo.GetDealByID(dealID)
	if err != nil {
		return err
	}
	if deal.Status.IsTerminal() {
		return domain.ErrDealTerminal
	}
	wf, err := uc.workflowRepo.GetWorkflowByID(workflowID)
	if err != nil {
		return err
	}
	return uc.initialize(deal, wf)
}

// selectWorkflow applies the first-eligible policy: workflows in priority
// order, falling back to the designated default, then to the first available.
func (uc *DefaultWorkflowUsecase) selectWorkflow(deal *domain.Deal, partner *domain.Partner) (*domain.ApprovalWorkflow, error) {
	workflows, err := uc.workflowRepo.ListActiveWorkflows()
	if err != nil {
		return nil, err
	}
	if len(workflows) == 0 {
		return nil, domain.ErrNoWorkflowAvailable
	}

	for _, wf := range workflows {
		if conditionsMatch(wf.Conditions, deal, partner) {
			return wf, nil
		}
	}
	for _, wf := range workflows {
		if wf.IsDefault {
			return wf, nil
		}
	}
	return workflows[0], nil
}

func conditionsMatch(c domain.WorkflowConditions, deal *domain.Deal, partner *domain.Partner) bool {
	if deal.TotalValue < c.MinValue {
		return false
	}
	if c.MaxValue > 0 && deal.TotalValue > c.MaxValue {
		return false
	}
	if len(c.Tiers) > 0 && !containsTier(c.Tiers, partner.Tier) {
		return false
	}
	if len(c.Territories) > 0 && !containsString(c.Territories, partner.Territory) {
		return false
	}
	return true
}

// autoApprovableStep returns the first step whose threshold covers the deal
// value. A value exactly at the threshold still auto-approves.
func autoApprovableStep(wf *domain.ApprovalWorkflow, value float64) *domain.ApprovalStep {
	if len(wf.Steps) == 0 {
		return nil
	}
	step := &wf.Steps[0]
	if step.AutoApproveThreshold != nil && value <= *step.AutoApproveThreshold {
		return step
	}
	return nil
}

func (uc *DefaultWorkflowUsecase) autoApprove(deal *domain.Deal, wf *domain.ApprovalWorkflow, step *domain.ApprovalStep) error {
	id, err := newID()
	if err != nil {
		return err
	}
	now := time.Now()
	approval := &domain.DealApproval{
		ID:           id,
		DealID:       deal.ID,
		WorkflowID:   wf.ID,
		StepNumber:   step.StepNumber,
		RequiredRole: step.RequiredRole,
		ApproverID:   "system",
		Action:       domain.ActionApprove,
		Comments:     "auto-approved",
		CreatedAt:    now,
		ApprovedAt:   &now,
	}
	if err := uc.approvalRepo.CreateApproval(approval); err != nil {
		return err
	}
	if err := uc.dealRepo.UpdateDealStatus(deal.ID, domain.StatusApproved, domain.SubStatusAutoApproved); err != nil {
		return err
	}
	uc.appendHistory(deal, deal.Status, domain.StatusApproved, domain.SubStatusAutoApproved, "system", "auto-approved under workflow threshold")
	uc.publishTransition(deal, domain.StatusApproved, domain.SubStatusAutoApproved, domain.ActionApprove)
	uc.recordAction(domain.ActionApprove)
	return nil
}

func (uc *DefaultWorkflowUsecase) initialize(deal *domain.Deal, wf *domain.ApprovalWorkflow) error {
	first := firstRequiredStep(wf)
	if first == nil {
		return domain.ErrNoWorkflowAvailable
	}

	id, err := newID()
	if err != nil {
		return err
	}
	approval := &domain.DealApproval{
		ID:           id,
		DealID:       deal.ID,
		WorkflowID:   wf.ID,
		StepNumber:   first.StepNumber,
		RequiredRole: first.RequiredRole,
		CreatedAt:    time.Now(),
	}
	if err := uc.approvalRepo.CreateApproval(approval); err != nil {
		return err
	}

	sub := first.RequiredRole.SubStatus()
	if err := uc.dealRepo.UpdateDealStatus(deal.ID, domain.StatusPending, sub); err != nil {
		return err
	}
	uc.appendHistory(deal, deal.Status, domain.StatusPending, sub, "system", "approval workflow initialized")
	return nil
}

func firstRequiredStep(wf *domain.ApprovalWorkflow) *domain.ApprovalStep {
	for i := range wf.Steps {
		if wf.Steps[i].Required {
			return &wf.Steps[i]
		}
	}
	return nil
}

func containsTier(tiers []domain.PartnerTier, tier domain.PartnerTier) bool {
	for _, t := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
