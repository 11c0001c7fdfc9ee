package domain

import "time"

type DealStatus string

const (
	StatusPending  DealStatus = "pending"
	StatusAssigned DealStatus = "assigned"
	StatusDisputed DealStatus = "disputed"
	StatusApproved DealStatus = "approved"
	StatusRejected DealStatus = "rejected"
)

type DealSubStatus string

const (
	SubStatusValidationPending DealSubStatus = "validation_pending"
	SubStatusStaffReview       DealSubStatus = "staff_review"
	SubStatusManagerReview     DealSubStatus = "manager_review"
	SubStatusAdminReview       DealSubStatus = "admin_review"
	SubStatusAutoApproved      DealSubStatus = "auto_approved"
	SubStatusEscalated         DealSubStatus = "escalated"
)

// IsTerminal reports whether the deal can no longer be mutated.
func (s DealStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type DealLine struct {
	ProductID string
	Quantity  int64
	UnitPrice float64
}

func (l DealLine) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

type EndCustomer struct {
	ID           string
	CompanyName  string
	ContactName  string
	ContactEmail string
	Territory    string
}

type Deal struct {
	ID          string
	PartnerID   string
	EndCustomer EndCustomer
	Lines       []DealLine
	TotalValue  float64
	Status      DealStatus
	SubStatus   DealSubStatus
	WorkflowID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DealStatusHistory struct {
	ID         string
	DealID     string
	FromStatus DealStatus
	ToStatus   DealStatus
	SubStatus  DealSubStatus
	ActorID    string
	Note       string
	CreatedAt  time.Time
}

// DealWindowFilter bounds the existing-deal population scanned by conflict
// detection. Zero values mean "no restriction".
type DealWindowFilter struct {
	PartnerID     string
	Since         time.Time
	ExcludeDealID string
	ExcludeStatus []DealStatus
	Limit         int
}

type DealRepository interface {
	GetDealByID(dealID string) (*Deal, error)
	FindDeals(filter DealWindowFilter) ([]*Deal, error)
	UpdateDealStatus(dealID string, status DealStatus, subStatus DealSubStatus) error
}

type StatusHistoryRepository interface {
	AppendStatusHistory(entry *DealStatusHistory) error
}
