package repository

import (
	"errors"
	"fmt"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/mappers"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPartnerRepository struct {
	db *gorm.DB
}

func NewDefaultPartnerRepository(db *gorm.DB) *DefaultPartnerRepository {
	return &DefaultPartnerRepository{db: db}
}

func (r *DefaultPartnerRepository) GetPartnerByID(partnerID string) (*domain.Partner, error) {
	var partnerModel models.PartnerModel
	if err := r.db.Where("id = ?", partnerID).First(&partnerModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	return mappers.ToDomainPartner(&partnerModel), nil
}

type DefaultProductRepository struct {
	db *gorm.DB
}

func NewDefaultProductRepository(db *gorm.DB) *DefaultProductRepository {
	return &DefaultProductRepository{db: db}
}

func (r *DefaultProductRepository) GetProductByID(productID string) (*domain.Product, error) {
	var productModel models.ProductModel
	if err := r.db.Where("id = ?", productID).First(&productModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return mappers.ToDomainProduct(&productModel), nil
}

func (r *DefaultProductRepository) GetProductAvailability(productID string) ([]*domain.ProductAvailability, error) {
	var rows []models.ProductAvailabilityModel
	if err := r.db.Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load availability for product %s: %w", productID, err)
	}
	out := make([]*domain.ProductAvailability, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainAvailability(&rows[i])
	}
	return out, nil
}

type DefaultEligibilityRuleRepository struct {
	db *gorm.DB
}

func NewDefaultEligibilityRuleRepository(db *gorm.DB) *DefaultEligibilityRuleRepository {
	return &DefaultEligibilityRuleRepository{db: db}
}

func (r *DefaultEligibilityRuleRepository) GetEligibilityRules(ruleType string) ([]*domain.EligibilityRule, error) {
	var rows []models.EligibilityRuleModel
	if err := r.db.Where("rule_type = ?", ruleType).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s rules: %w", ruleType, err)
	}
	out := make([]*domain.EligibilityRule, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainEligibilityRule(&rows[i])
	}
	return out, nil
}
