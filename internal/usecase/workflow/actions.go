package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/partnerdesk/deal-service/internal/domain"
)

// ProcessApprovalAction resolves the deal's single unresolved approval row and
// advances the state machine. Two concurrent calls race on the same row; the
// store's unresolved-row constraint rejects the loser and the error is
// surfaced, never retried here.
func (uc *DefaultWorkflowUsecase) ProcessApprovalAction(input ApprovalActionInput) (*ActionResult, error) {
	deal, err := uc.dealRepo.GetDealByID(input.DealID)
	if err != nil {
		return nil, err
	}
	if deal.Status.IsTerminal() {
		return nil, domain.ErrDealTerminal
	}

	current, err := uc.approvalRepo.GetCurrentApproval(input.DealID)
	if err != nil {
		if errors.Is(err, domain.ErrNoPendingApproval) {
			return nil, domain.ErrNoPendingApproval
		}
		return nil, fmt.Errorf("load current approval: %w", err)
	}

	wf, err := uc.workflowRepo.GetWorkflowByID(current.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("load workflow %s: %w", current.WorkflowID, err)
	}

	if err := uc.approvalRepo.ResolveApproval(current.ID, input.ApproverID, input.Action, input.Comments); err != nil {
		return nil, fmt.Errorf("resolve approval %s: %w", current.ID, err)
	}

	uc.recordAction(input.Action)

	switch input.Action {
	case domain.ActionApprove:
		return uc.advance(deal, wf, current, input)
	case domain.ActionReject:
		return uc.reject(deal, input)
	case domain.ActionRequestChanges:
		return uc.requestChanges(deal, input)
	case domain.ActionEscalate:
		return uc.escalate(deal, wf, input)
	default:
		return nil, fmt.Errorf("unknown approval action %q", input.Action)
	}
}

// advance moves to the next required step or marks the deal terminally
// approved when none remains.
func (uc *DefaultWorkflowUsecase) advance(deal *domain.Deal, wf *domain.ApprovalWorkflow, current *domain.DealApproval, input ApprovalActionInput) (*ActionResult, error) {
	next := wf.NextRequiredStep(current.StepNumber)
	if next == nil {
		if err := uc.dealRepo.UpdateDealStatus(deal.ID, domain.StatusApproved, ""); err != nil {
			return nil, err
		}
		uc.appendHistory(deal, deal.Status, domain.StatusApproved, "", input.ApproverID, input.Comments)
		uc.publishTransition(deal, domain.StatusApproved, "", domain.ActionApprove)
		return &ActionResult{
			DealID:  deal.ID,
			Action:  domain.ActionApprove,
			Status:  domain.StatusApproved,
			Message: "all required steps approved",
		}, nil
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	approval := &domain.DealApproval{
		ID:           id,
		DealID:       deal.ID,
		WorkflowID:   wf.ID,
		StepNumber:   next.StepNumber,
		RequiredRole: next.RequiredRole,
		CreatedAt:    time.Now(),
	}
	if err := uc.approvalRepo.CreateApproval(approval); err != nil {
		return nil, err
	}

	sub := next.RequiredRole.SubStatus()
	if err := uc.dealRepo.UpdateDealStatus(deal.ID, domain.StatusPending, sub); err != nil {
		return nil, err
	}
	uc.appendHistory(deal, deal.Status, domain.StatusPending, sub, input.ApproverID, input.Comments)

	return &ActionResult{
		DealID:    deal.ID,
		Action:    domain.ActionApprove,
		Status:    domain.StatusPending,
		SubStatus: sub,
		Message:   fmt.Sprintf("advanced to step %d (%s)", next.StepNumber, next.RequiredRole),
	}, nil
}

func (uc *DefaultWorkflowUsecase) reject(deal *domain.Deal, input ApprovalActionInput) (*ActionResult, error) {
	if err := uc.dealRepo.UpdateDealStatus(deal.ID, domain.StatusRejected, ""); err != nil {
		return nil, err
	}
	uc.appendHistory(deal, deal.Status, domain.StatusRejected, "", input.ApproverID, input.Comments)
	uc.publishTransition(deal, domain.StatusRejected, "", domain.ActionReject)

	return &ActionResult{
		DealID:  deal.ID,
		Action:  domain.ActionReject,
		Status:  domain.StatusRejected,
		Message: "deal rejected",
	}, nil
}

// requestChanges returns the deal to validation without closing the workflow.
func (uc *DefaultWorkflowUsecase) requestChanges(deal *domain.Deal, input ApprovalActionInput) (*ActionResult, error) {
	if err := uc.dealRepo.UpdateDealStatus(deal.ID, domain.StatusPending, domain.SubStatusValidationPending); err != nil {
		return nil, err
	}
	uc.appendHistory(deal, deal.Status, domain.StatusPending, domain.SubStatusValidationPending, input.ApproverID, input.Comments)

	return &ActionResult{
		DealID:    deal.ID,
		Action:    domain.ActionRequestChanges,
		Status:    domain.StatusPending,
		SubStatus: domain.SubStatusValidationPending,
		Message:   "changes requested from the submitting partner",
	}, nil
}

// escalate always targets the workflow's admin-role step.
func (uc *DefaultWorkflowUsecase) escalate(deal *domain.Deal, wf *domain.ApprovalWorkflow, input ApprovalActionInput) (*ActionResult, error) {
	adminStep := wf.AdminStep()
	if adminStep == nil {
		return nil, fmt.Errorf("workflow %s has no admin step to escalate to", wf.ID)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	approval := &domain.DealApproval{
		ID:           id,
		DealID:       deal.ID,
		WorkflowID:   wf.ID,
		StepNumber:   adminStep.StepNumber,
		RequiredRole: adminStep.RequiredRole,
		AssignedTo:   input.EscalateToID,
		CreatedAt:    time.Now(),
	}
	if err := uc.approvalRepo.CreateApproval(approval); err != nil {
		return nil, err
	}

	if err := uc.dealRepo.UpdateDealStatus(deal.ID, domain.StatusPending, domain.SubStatusEscalated); err != nil {
		return nil, err
	}
	uc.appendHistory(deal, deal.Status, domain.StatusPending, domain.SubStatusEscalated, input.ApproverID, input.Comments)
	uc.publishTransition(deal, domain.StatusPending, domain.SubStatusEscalated, domain.ActionEscalate)

	return &ActionResult{
		DealID:    deal.ID,
		Action:    domain.ActionEscalate,
		Status:    domain.StatusPending,
		SubStatus: domain.SubStatusEscalated,
		Message:   fmt.Sprintf("escalated to step %d (%s)", adminStep.StepNumber, adminStep.RequiredRole),
	}, nil
}
