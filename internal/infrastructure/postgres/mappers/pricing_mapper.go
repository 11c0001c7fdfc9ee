package mappers

import (
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
)

func ToDomainTerritoryPricing(model *models.TerritoryPricingModel) *domain.TerritoryPricing {
	return &domain.TerritoryPricing{
		ID:         model.ID,
		ProductID:  model.ProductID,
		Territory:  model.Territory,
		Multiplier: model.Multiplier,
		IsActive:   model.IsActive,
	}
}

func ToDomainPartnerTierPricing(model *models.PartnerTierPricingModel) *domain.PartnerTierPricing {
	return &domain.PartnerTierPricing{
		ID:        model.ID,
		ProductID: model.ProductID,
		Tier:      domain.PartnerTier(model.Tier),
		Territory: model.Territory,
		Price:     model.Price,
		IsActive:  model.IsActive,
	}
}

func ToDomainVolumeDiscount(model *models.VolumeDiscountModel) *domain.VolumeDiscount {
	return &domain.VolumeDiscount{
		ID:          model.ID,
		ProductID:   model.ProductID,
		Name:        model.Name,
		MinQuantity: model.MinQuantity,
		MaxQuantity: model.MaxQuantity,
		Type:        domain.DiscountType(model.Type),
		Value:       model.Value,
		Tier:        domain.PartnerTier(model.Tier),
		Territory:   model.Territory,
		IsActive:    model.IsActive,
	}
}

func ToDomainPromotionalPricing(model *models.PromotionalPricingModel) *domain.PromotionalPricing {
	return &domain.PromotionalPricing{
		ID:          model.ID,
		ProductID:   model.ProductID,
		Name:        model.Name,
		MinQuantity: model.MinQuantity,
		Type:        domain.DiscountType(model.Type),
		Value:       model.Value,
		Tier:        domain.PartnerTier(model.Tier),
		Territory:   model.Territory,
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
		IsActive:    model.IsActive,
	}
}

func ToDomainDealRegistrationPricing(model *models.DealRegistrationPricingModel) *domain.DealRegistrationPricing {
	return &domain.DealRegistrationPricing{
		ID:           model.ID,
		ProductID:    model.ProductID,
		Name:         model.Name,
		MinDealValue: model.MinDealValue,
		MaxDealValue: model.MaxDealValue,
		UnitPrice:    model.UnitPrice,
		Tier:         domain.PartnerTier(model.Tier),
		Territory:    model.Territory,
		IsActive:     model.IsActive,
	}
}
