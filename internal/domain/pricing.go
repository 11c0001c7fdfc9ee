package domain

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// TerritoryPricing multiplies the running price for a (product, territory) pair.
type TerritoryPricing struct {
	ID         string
	ProductID  string
	Territory  string
	Multiplier float64
	IsActive   bool
}

// PartnerTierPricing replaces the running price with a fixed per-tier price.
// Territory is optional scope: empty means all territories.
type PartnerTierPricing struct {
	ID        string
	ProductID string
	Tier      PartnerTier
	Territory string
	Price     float64
	IsActive  bool
}

// VolumeDiscount applies within a quantity band. MaxQuantity 0 means open-ended.
// Tier and Territory are optional scope.
type VolumeDiscount struct {
	ID          string
	ProductID   string
	Name        string
	MinQuantity int64
	MaxQuantity int64
	Type        DiscountType
	Value       float64
	Tier        PartnerTier
	Territory   string
	IsActive    bool
}

// PromotionalPricing is a time-boxed, quantity-gated discount.
type PromotionalPricing struct {
	ID          string
	ProductID   string
	Name        string
	MinQuantity int64
	Type        DiscountType
	Value       float64
	Tier        PartnerTier
	Territory   string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
}

// DealRegistrationPricing is a value-banded unit-price override granted to
// registered deals. MaxDealValue 0 means open-ended.
type DealRegistrationPricing struct {
	ID           string
	ProductID    string
	Name         string
	MinDealValue float64
	MaxDealValue float64
	UnitPrice    float64
	Tier         PartnerTier
	Territory    string
	IsActive     bool
}

// PricingContext carries everything a price calculation depends on besides the
// product itself. CalculationDate zero value means "now".
type PricingContext struct {
	Quantity           int64
	PartnerTier        PartnerTier
	Territory          string
	IsDealRegistration bool
	DealValue          float64
	CalculationDate    time.Time
}

type AppliedDiscount struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage,omitempty"`
}

type PricingResult struct {
	ProductID          string            `json:"product_id"`
	ListPrice          float64           `json:"list_price"`
	FinalPrice         float64           `json:"final_price"`
	Quantity           int64             `json:"quantity"`
	TotalPrice         float64           `json:"total_price"`
	Discounts          []AppliedDiscount `json:"discounts"`
	RegistrationApplied bool             `json:"registration_applied"`
}

type PricingRuleRepository interface {
	GetTerritoryPricing(productID, territory string) ([]*TerritoryPricing, error)
	GetPartnerTierPricing(productID string, tier PartnerTier) ([]*PartnerTierPricing, error)
	GetVolumeDiscounts(productID string) ([]*VolumeDiscount, error)
	GetPromotionalPricing(productID string) ([]*PromotionalPricing, error)
	GetDealRegistrationPricing(productID string) ([]*DealRegistrationPricing, error)
}
