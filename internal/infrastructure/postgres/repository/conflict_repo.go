package repository

import (
	"fmt"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/mappers"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultConflictRepository struct {
	db *gorm.DB
}

func NewDefaultConflictRepository(db *gorm.DB) *DefaultConflictRepository {
	return &DefaultConflictRepository{db: db}
}

// CreateConflict inserts a conflict pair. The unordered-pair unique index
// rejects a duplicate registration from either direction; the caller decides
// whether that is worth reporting.
func (r *DefaultConflictRepository) CreateConflict(conflict *domain.DealConflict) error {
	if err := r.db.Create(mappers.ToGORMConflict(conflict)).Error; err != nil {
		return fmt.Errorf("failed to create conflict for deal %s: %w", conflict.DealID, err)
	}
	return nil
}

func (r *DefaultConflictRepository) ListConflictsByDeal(dealID string) ([]*domain.DealConflict, error) {
	var rows []models.DealConflictModel
	err := r.db.Model(&models.DealConflictModel{}).
		Where("deal_id = ? OR conflicting_deal_id = ?", dealID, dealID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts for deal %s: %w", dealID, err)
	}
	out := make([]*domain.DealConflict, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainConflict(&rows[i])
	}
	return out, nil
}
