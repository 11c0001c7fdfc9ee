package mappers

import (
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
)

func ToDomainWorkflow(model *models.ApprovalWorkflowModel) *domain.ApprovalWorkflow {
	steps := make([]domain.ApprovalStep, len(model.Steps))
	for i, s := range model.Steps {
		steps[i] = domain.ApprovalStep{
			StepNumber:           s.StepNumber,
			RequiredRole:         domain.ApprovalRole(s.RequiredRole),
			Required:             s.Required,
			AutoApproveThreshold: s.AutoApproveThreshold,
		}
	}

	tiers := make([]domain.PartnerTier, len(model.Tiers))
	for i, t := range model.Tiers {
		tiers[i] = domain.PartnerTier(t)
	}

	return &domain.ApprovalWorkflow{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		IsDefault:   model.IsDefault,
		Priority:    model.Priority,
		Conditions: domain.WorkflowConditions{
			MinValue:    model.MinValue,
			MaxValue:    model.MaxValue,
			Tiers:       tiers,
			Territories: model.Territories,
		},
		Steps:    steps,
		IsActive: model.IsActive,
	}
}

func ToDomainApproval(model *models.DealApprovalModel) *domain.DealApproval {
	return &domain.DealApproval{
		ID:           model.ID,
		DealID:       model.DealID,
		WorkflowID:   model.WorkflowID,
		StepNumber:   model.StepNumber,
		RequiredRole: domain.ApprovalRole(model.RequiredRole),
		AssignedTo:   model.AssignedTo,
		ApproverID:   model.ApproverID,
		Action:       domain.ApprovalAction(model.Action),
		Comments:     model.Comments,
		CreatedAt:    model.CreatedAt,
		ApprovedAt:   model.ApprovedAt,
	}
}

func ToGORMApproval(approval *domain.DealApproval) *models.DealApprovalModel {
	return &models.DealApprovalModel{
		ID:           approval.ID,
		DealID:       approval.DealID,
		WorkflowID:   approval.WorkflowID,
		StepNumber:   approval.StepNumber,
		RequiredRole: string(approval.RequiredRole),
		AssignedTo:   approval.AssignedTo,
		ApproverID:   approval.ApproverID,
		Action:       string(approval.Action),
		Comments:     approval.Comments,
		CreatedAt:    approval.CreatedAt,
		ApprovedAt:   approval.ApprovedAt,
	}
}
