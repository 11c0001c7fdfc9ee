package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/partnerdesk/deal-service/internal/domain"
)

type EndCustomerRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Territory    string `json:"territory" binding:"required"`
}

type DealLineRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

type ValidateDealRequest struct {
	DealID      string             `json:"deal_id"`
	PartnerID   string             `json:"partner_id" binding:"required"`
	EndCustomer EndCustomerRequest `json:"end_customer" binding:"required"`
	Lines       []DealLineRequest  `json:"lines" binding:"required,min=1"`
}

// ToDomain builds the draft deal to validate. A submission without a deal ID
// gets a fresh one so validation logs and conflict exclusion stay keyed.
func (r *ValidateDealRequest) ToDomain() *domain.Deal {
	dealID := r.DealID
	if dealID == "" {
		dealID = uuid.NewString()
	}

	lines := make([]domain.DealLine, len(r.Lines))
	total := 0.0
	for i, l := range r.Lines {
		lines[i] = domain.DealLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		total += lines[i].Total()
	}
	return &domain.Deal{
		ID:        dealID,
		PartnerID: r.PartnerID,
		EndCustomer: domain.EndCustomer{
			CompanyName:  r.EndCustomer.CompanyName,
			ContactName:  r.EndCustomer.ContactName,
			ContactEmail: r.EndCustomer.ContactEmail,
			Territory:    r.EndCustomer.Territory,
		},
		Lines:      lines,
		TotalValue: total,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now(),
	}
}

type CalculatePriceRequest struct {
	ProductID          string  `json:"product_id" binding:"required"`
	Quantity           int64   `json:"quantity"`
	PartnerTier        string  `json:"partner_tier" binding:"required"`
	Territory          string  `json:"territory"`
	IsDealRegistration bool    `json:"is_deal_registration"`
	DealValue          float64 `json:"deal_value"`
	CalculationDate    string  `json:"calculation_date"`
}

type ApprovalActionRequest struct {
	ApproverID   string `json:"approver_id" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=approve reject request_changes escalate"`
	Comments     string `json:"comments"`
	EscalateToID string `json:"escalate_to_id"`
}

type BulkApproveRequest struct {
	DealIDs    []string `json:"deal_ids" binding:"required,min=1"`
	ApproverID string   `json:"approver_id" binding:"required"`
	Comments   string   `json:"comments"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
