package mappers

import (
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
)

func ToDomainDeal(model *models.DealModel) *domain.Deal {
	lines := make([]domain.DealLine, len(model.Lines))
	for i, l := range model.Lines {
		lines[i] = domain.DealLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return &domain.Deal{
		ID:        model.ID,
		PartnerID: model.PartnerID,
		EndCustomer: domain.EndCustomer{
			ID:           model.EndCustomer.ID,
			CompanyName:  model.EndCustomer.CompanyName,
			ContactName:  model.EndCustomer.ContactName,
			ContactEmail: model.EndCustomer.ContactEmail,
			Territory:    model.EndCustomer.Territory,
		},
		Lines:      lines,
		TotalValue: model.TotalValue,
		Status:     domain.DealStatus(model.Status),
		SubStatus:  domain.DealSubStatus(model.SubStatus),
		WorkflowID: model.WorkflowID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ToGORMStatusHistory(entry *domain.DealStatusHistory) *models.DealStatusHistoryModel {
	return &models.DealStatusHistoryModel{
		ID:         entry.ID,
		DealID:     entry.DealID,
		FromStatus: string(entry.FromStatus),
		ToStatus:   string(entry.ToStatus),
		SubStatus:  string(entry.SubStatus),
		ActorID:    entry.ActorID,
		Note:       entry.Note,
		CreatedAt:  entry.CreatedAt,
	}
}
