package repository

import (
	"errors"
	"fmt"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/mappers"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDealRepository struct {
	db *gorm.DB
}

func NewDefaultDealRepository(db *gorm.DB) *DefaultDealRepository {
	return &DefaultDealRepository{db: db}
}

func (r *DefaultDealRepository) GetDealByID(dealID string) (*domain.Deal, error) {
	var dealModel models.DealModel
	err := r.db.Model(&models.DealModel{}).
		Preload("EndCustomer").
		Preload("Lines").
		Where("id = ?", dealID).
		First(&dealModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to find deal %s: %w", dealID, err)
	}
	return mappers.ToDomainDeal(&dealModel), nil
}

func (r *DefaultDealRepository) FindDeals(filter domain.DealWindowFilter) ([]*domain.Deal, error) {
	query := r.db.Model(&models.DealModel{}).
		Preload("EndCustomer").
		Preload("Lines")

	if filter.PartnerID != "" {
		query = query.Where("partner_id = ?", filter.PartnerID)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	if filter.ExcludeDealID != "" {
		query = query.Where("id <> ?", filter.ExcludeDealID)
	}
	if len(filter.ExcludeStatus) > 0 {
		query = query.Where("status NOT IN ?", filter.ExcludeStatus)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var dealModels []models.DealModel
	if err := query.Order("created_at DESC").Find(&dealModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find deals: %w", err)
	}

	deals := make([]*domain.Deal, len(dealModels))
	for i := range dealModels {
		deals[i] = mappers.ToDomainDeal(&dealModels[i])
	}
	return deals, nil
}

func (r *DefaultDealRepository) UpdateDealStatus(dealID string, status domain.DealStatus, subStatus domain.DealSubStatus) error {
	result := r.db.Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"sub_status": string(subStatus),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update deal %s status: %w", dealID, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrDealNotFound
	}
	return nil
}

type DefaultStatusHistoryRepository struct {
	db *gorm.DB
}

func NewDefaultStatusHistoryRepository(db *gorm.DB) *DefaultStatusHistoryRepository {
	return &DefaultStatusHistoryRepository{db: db}
}

func (r *DefaultStatusHistoryRepository) AppendStatusHistory(entry *domain.DealStatusHistory) error {
	return r.db.Create(mappers.ToGORMStatusHistory(entry)).Error
}
