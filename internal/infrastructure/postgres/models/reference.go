package models

import (
	"time"

	"github.com/lib/pq"
)

type PartnerModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Name         string
	Tier         string `gorm:"index:idx_partners_tier"`
	Territory    string
	Status       string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PartnerModel) TableName() string {
	return "resellers"
}

type ProductModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Category  string `gorm:"index:idx_products_category"`
	ListPrice float64
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductAvailabilityModel struct {
	ID              string `gorm:"primaryKey"`
	ProductID       string `gorm:"index:idx_availability_product"`
	Territory       string
	RestrictedTiers pq.StringArray `gorm:"type:text[]"`
	IsAvailable     bool           `gorm:"default:true"`
}

type EligibilityRuleModel struct {
	ID       string `gorm:"primaryKey"`
	RuleType string `gorm:"index:idx_eligibility_rule_type"`
	Tier     string
	MaxValue float64
	IsActive bool `gorm:"default:true"`
}
