package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/mappers"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultWorkflowRepository struct {
	db *gorm.DB
}

func NewDefaultWorkflowRepository(db *gorm.DB) *DefaultWorkflowRepository {
	return &DefaultWorkflowRepository{db: db}
}

func (r *DefaultWorkflowRepository) ListActiveWorkflows() ([]*domain.ApprovalWorkflow, error) {
	var rows []models.ApprovalWorkflowModel
	err := r.db.Model(&models.ApprovalWorkflowModel{}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Where("is_active = ?", true).
		Order("priority DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	workflows := make([]*domain.ApprovalWorkflow, len(rows))
	for i := range rows {
		workflows[i] = mappers.ToDomainWorkflow(&rows[i])
	}
	return workflows, nil
}

func (r *DefaultWorkflowRepository) GetWorkflowByID(workflowID string) (*domain.ApprovalWorkflow, error) {
	var row models.ApprovalWorkflowModel
	err := r.db.Model(&models.ApprovalWorkflowModel{}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Where("id = ?", workflowID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoWorkflowAvailable
		}
		return nil, fmt.Errorf("failed to find workflow %s: %w", workflowID, err)
	}
	return mappers.ToDomainWorkflow(&row), nil
}

type DefaultApprovalRepository struct {
	db *gorm.DB
}

func NewDefaultApprovalRepository(db *gorm.DB) *DefaultApprovalRepository {
	return &DefaultApprovalRepository{db: db}
}

func (r *DefaultApprovalRepository) CreateApproval(approval *domain.DealApproval) error {
	if err := r.db.Create(mappers.ToGORMApproval(approval)).Error; err != nil {
		return fmt.Errorf("failed to create approval for deal %s: %w", approval.DealID, err)
	}
	return nil
}

func (r *DefaultApprovalRepository) GetCurrentApproval(dealID string) (*domain.DealApproval, error) {
	var row models.DealApprovalModel
	err := r.db.Model(&models.DealApprovalModel{}).
		Where("deal_id = ? AND approved_at IS NULL", dealID).
		Order("step_number DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoPendingApproval
		}
		return nil, fmt.Errorf("failed to find current approval for deal %s: %w", dealID, err)
	}
	return mappers.ToDomainApproval(&row), nil
}

func (r *DefaultApprovalRepository) ResolveApproval(approvalID, approverID string, action domain.ApprovalAction, comments string) error {
	result := r.db.Model(&models.DealApprovalModel{}).
		Where("id = ? AND approved_at IS NULL", approvalID).
		Updates(map[string]interface{}{
			"approver_id": approverID,
			"action":      string(action),
			"comments":    comments,
			"approved_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to resolve approval %s: %w", approvalID, result.Error)
	}
	// A concurrent resolver already claimed the row.
	if result.RowsAffected == 0 {
		return domain.ErrNoPendingApproval
	}
	return nil
}

func (r *DefaultApprovalRepository) ListApprovalsByDeal(dealID string) ([]*domain.DealApproval, error) {
	var rows []models.DealApprovalModel
	err := r.db.Model(&models.DealApprovalModel{}).
		Where("deal_id = ?", dealID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals for deal %s: %w", dealID, err)
	}
	out := make([]*domain.DealApproval, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainApproval(&rows[i])
	}
	return out, nil
}

func (r *DefaultApprovalRepository) FindPendingByRole(role domain.ApprovalRole) ([]*domain.DealApproval, error) {
	var rows []models.DealApprovalModel
	err := r.db.Model(&models.DealApprovalModel{}).
		Where("required_role = ? AND approved_at IS NULL", string(role)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals for role %s: %w", role, err)
	}
	out := make([]*domain.DealApproval, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainApproval(&rows[i])
	}
	return out, nil
}
