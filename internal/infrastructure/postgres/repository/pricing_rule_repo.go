package repository

import (
	"fmt"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/mappers"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultPricingRuleRepository serves the five pricing rule tables. Reads
// return active and inactive rows alike; the engine's selection policies skip
// inactive ones, so rule toggles never need schema-side filters.
type DefaultPricingRuleRepository struct {
	db *gorm.DB
}

func NewDefaultPricingRuleRepository(db *gorm.DB) *DefaultPricingRuleRepository {
	return &DefaultPricingRuleRepository{db: db}
}

func (r *DefaultPricingRuleRepository) GetTerritoryPricing(productID, territory string) ([]*domain.TerritoryPricing, error) {
	var rows []models.TerritoryPricingModel
	if err := r.db.Where("product_id = ? AND territory = ?", productID, territory).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("territory pricing for product %s: %w", productID, err)
	}
	out := make([]*domain.TerritoryPricing, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainTerritoryPricing(&rows[i])
	}
	return out, nil
}

func (r *DefaultPricingRuleRepository) GetPartnerTierPricing(productID string, tier domain.PartnerTier) ([]*domain.PartnerTierPricing, error) {
	var rows []models.PartnerTierPricingModel
	if err := r.db.Where("product_id = ? AND tier = ?", productID, string(tier)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("tier pricing for product %s: %w", productID, err)
	}
	out := make([]*domain.PartnerTierPricing, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainPartnerTierPricing(&rows[i])
	}
	return out, nil
}

func (r *DefaultPricingRuleRepository) GetVolumeDiscounts(productID string) ([]*domain.VolumeDiscount, error) {
	var rows []models.VolumeDiscountModel
	if err := r.db.Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("volume discounts for product %s: %w", productID, err)
	}
	out := make([]*domain.VolumeDiscount, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainVolumeDiscount(&rows[i])
	}
	return out, nil
}

func (r *DefaultPricingRuleRepository) GetPromotionalPricing(productID string) ([]*domain.PromotionalPricing, error) {
	var rows []models.PromotionalPricingModel
	if err := r.db.Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("promotional pricing for product %s: %w", productID, err)
	}
	out := make([]*domain.PromotionalPricing, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainPromotionalPricing(&rows[i])
	}
	return out, nil
}

func (r *DefaultPricingRuleRepository) GetDealRegistrationPricing(productID string) ([]*domain.DealRegistrationPricing, error) {
	var rows []models.DealRegistrationPricingModel
	if err := r.db.Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("registration pricing for product %s: %w", productID, err)
	}
	out := make([]*domain.DealRegistrationPricing, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainDealRegistrationPricing(&rows[i])
	}
	return out, nil
}
