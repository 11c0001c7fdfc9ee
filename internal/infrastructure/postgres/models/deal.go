package models

import "time"

type EndCustomerModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	CompanyName  string `gorm:"index:idx_end_customer_name"`
	ContactName  string
	ContactEmail string
	Territory    string `gorm:"index:idx_end_customer_territory"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type DealLineModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	DealID    string `gorm:"type:uuid;index:idx_deal_lines_deal"`
	ProductID string
	Quantity  int64
	UnitPrice float64
}

type DealModel struct {
	ID            string           `gorm:"primaryKey;type:uuid"`
	PartnerID     string           `gorm:"index:idx_deals_partner"`
	EndCustomerID string           `gorm:"type:uuid"`
	EndCustomer   EndCustomerModel `gorm:"foreignKey:EndCustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Lines         []DealLineModel  `gorm:"foreignKey:DealID;references:ID;constraint:OnDelete:CASCADE;"`
	TotalValue    float64          `gorm:"index:idx_deals_value"`
	Status        string           `gorm:"index:idx_deals_status"`
	SubStatus     string
	WorkflowID    string
	CreatedAt     time.Time `gorm:"index:idx_deals_created_at"`
	UpdatedAt     time.Time
}

type DealStatusHistoryModel struct {
	ID         string `gorm:"primaryKey"`
	DealID     string `gorm:"type:uuid;index:idx_status_history_deal"`
	FromStatus string
	ToStatus   string
	SubStatus  string
	ActorID    string
	Note       string
	CreatedAt  time.Time
}
