package mappers

import (
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
)

func ToDomainPartner(model *models.PartnerModel) *domain.Partner {
	return &domain.Partner{
		ID:           model.ID,
		Name:         model.Name,
		Tier:         domain.PartnerTier(model.Tier),
		Territory:    model.Territory,
		Status:       domain.PartnerStatus(model.Status),
		ContactEmail: model.ContactEmail,
	}
}

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		Category:  model.Category,
		ListPrice: model.ListPrice,
		IsActive:  model.IsActive,
	}
}

func ToDomainAvailability(model *models.ProductAvailabilityModel) *domain.ProductAvailability {
	return &domain.ProductAvailability{
		ID:              model.ID,
		ProductID:       model.ProductID,
		Territory:       model.Territory,
		RestrictedTiers: model.RestrictedTiers,
		IsAvailable:     model.IsAvailable,
	}
}

func ToDomainEligibilityRule(model *models.EligibilityRuleModel) *domain.EligibilityRule {
	return &domain.EligibilityRule{
		ID:       model.ID,
		RuleType: model.RuleType,
		Tier:     domain.PartnerTier(model.Tier),
		MaxValue: model.MaxValue,
		IsActive: model.IsActive,
	}
}
