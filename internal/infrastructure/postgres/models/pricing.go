package models

import "time"

type TerritoryPricingModel struct {
	ID         string `gorm:"primaryKey"`
	ProductID  string `gorm:"index:idx_territory_pricing_product"`
	Territory  string
	Multiplier float64
	IsActive   bool `gorm:"default:true"`
}

func (TerritoryPricingModel) TableName() string {
	return "territory_pricing"
}

type PartnerTierPricingModel struct {
	ID        string `gorm:"primaryKey"`
	ProductID string `gorm:"index:idx_tier_pricing_product"`
	Tier      string
	Territory string
	Price     float64
	IsActive  bool `gorm:"default:true"`
}

func (PartnerTierPricingModel) TableName() string {
	return "product_pricing_tiers"
}

type VolumeDiscountModel struct {
	ID          string `gorm:"primaryKey"`
	ProductID   string `gorm:"index:idx_volume_discounts_product"`
	Name        string
	MinQuantity int64
	MaxQuantity int64
	Type        string
	Value       float64
	Tier        string
	Territory   string
	IsActive    bool `gorm:"default:true"`
}

type PromotionalPricingModel struct {
	ID          string `gorm:"primaryKey"`
	ProductID   string `gorm:"index:idx_promo_pricing_product"`
	Name        string
	MinQuantity int64
	Type        string
	Value       float64
	Tier        string
	Territory   string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool `gorm:"default:true"`
}

func (PromotionalPricingModel) TableName() string {
	return "promotional_pricing"
}

type DealRegistrationPricingModel struct {
	ID           string `gorm:"primaryKey"`
	ProductID    string `gorm:"index:idx_registration_pricing_product"`
	Name         string
	MinDealValue float64
	MaxDealValue float64
	UnitPrice    float64
	Tier         string
	Territory    string
	IsActive     bool `gorm:"default:true"`
}

func (DealRegistrationPricingModel) TableName() string {
	return "deal_registration_pricing"
}
