package mappers

import (
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
)

func ToDomainConflict(model *models.DealConflictModel) *domain.DealConflict {
	return &domain.DealConflict{
		ID:                model.ID,
		DealID:            model.DealID,
		ConflictingDealID: model.ConflictingDealID,
		Type:              domain.ConflictType(model.Type),
		Severity:          domain.ConflictSeverity(model.Severity),
		SimilarityScore:   model.SimilarityScore,
		Details:           model.Details,
		Resolution:        domain.ResolutionStatus(model.Resolution),
		CreatedAt:         model.CreatedAt,
	}
}

func ToGORMConflict(conflict *domain.DealConflict) *models.DealConflictModel {
	return &models.DealConflictModel{
		ID:                conflict.ID,
		DealID:            conflict.DealID,
		ConflictingDealID: conflict.ConflictingDealID,
		Type:              string(conflict.Type),
		Severity:          string(conflict.Severity),
		SimilarityScore:   conflict.SimilarityScore,
		Details:           conflict.Details,
		Resolution:        string(conflict.Resolution),
		CreatedAt:         conflict.CreatedAt,
	}
}
