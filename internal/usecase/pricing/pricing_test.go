package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partnerdesk/deal-service/internal/domain"
)

type fakeProductRepo struct {
	products     map[string]*domain.Product
	availability map[string][]*domain.ProductAvailability
}

func (f *fakeProductRepo) GetProductByID(productID string) (*domain.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetProductAvailability(productID string) ([]*domain.ProductAvailability, error) {
	return f.availability[productID], nil
}

type fakeRuleRepo struct {
	territory    []*domain.TerritoryPricing
	tierPricing  []*domain.PartnerTierPricing
	volume       []*domain.VolumeDiscount
	promotions   []*domain.PromotionalPricing
	registration []*domain.DealRegistrationPricing
	err          error
}

func (f *fakeRuleRepo) GetTerritoryPricing(productID, territory string) ([]*domain.TerritoryPricing, error) {
	return f.territory, f.err
}

func (f *fakeRuleRepo) GetPartnerTierPricing(productID string, tier domain.PartnerTier) ([]*domain.PartnerTierPricing, error) {
	return f.tierPricing, f.err
}

func (f *fakeRuleRepo) GetVolumeDiscounts(productID string) ([]*domain.VolumeDiscount, error) {
	return f.volume, f.err
}

func (f *fakeRuleRepo) GetPromotionalPricing(productID string) ([]*domain.PromotionalPricing, error) {
	return f.promotions, f.err
}

func (f *fakeRuleRepo) GetDealRegistrationPricing(productID string) ([]*domain.DealRegistrationPricing, error) {
	return f.registration, f.err
}

func newTestUsecase(products *fakeProductRepo, rules *fakeRuleRepo) *DefaultPricingUsecase {
	return NewDefaultPricingUsecase(products, rules, nil, nil)
}

func widgetRepo(listPrice float64) *fakeProductRepo {
	return &fakeProductRepo{
		products: map[string]*domain.Product{
			"widget": {ID: "widget", Name: "Widget", ListPrice: listPrice, IsActive: true},
		},
	}
}

func TestCalculatePriceVolumeDiscount(t *testing.T) {
	rules := &fakeRuleRepo{
		volume: []*domain.VolumeDiscount{
			{ID: "v1", ProductID: "widget", Name: "10+ units", MinQuantity: 10, Type: domain.DiscountPercentage, Value: 10, IsActive: true},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)

	res, err := uc.CalculatePrice("widget", domain.PricingContext{
		Quantity:    10,
		PartnerTier: domain.TierSilver,
		Territory:   "North America",
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, res.ListPrice)
	assert.Equal(t, 900.0, res.FinalPrice)
	assert.Equal(t, 9000.0, res.TotalPrice)
	require.Len(t, res.Discounts, 1)
	assert.Equal(t, "volume", res.Discounts[0].Type)
	assert.Equal(t, -100.0, res.Discounts[0].Amount)
	assert.Equal(t, 10.0, res.Discounts[0].Percentage)
	assert.False(t, res.RegistrationApplied)
}

func TestCalculatePriceDeterministic(t *testing.T) {
	rules := &fakeRuleRepo{
		territory: []*domain.TerritoryPricing{
			{ID: "t1", Territory: "Europe", Multiplier: 1.1, IsActive: true},
		},
		volume: []*domain.VolumeDiscount{
			{ID: "v1", Name: "bulk", MinQuantity: 5, Type: domain.DiscountFixed, Value: 50, IsActive: true},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)
	pctx := domain.PricingContext{
		Quantity:        20,
		PartnerTier:     domain.TierGold,
		Territory:       "Europe",
		CalculationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	first, err := uc.CalculatePrice("widget", pctx)
	require.NoError(t, err)
	second, err := uc.CalculatePrice("widget", pctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculatePriceStageOrder(t *testing.T) {
	// The volume percentage must apply to the tier price, not the list price.
	rules := &fakeRuleRepo{
		tierPricing: []*domain.PartnerTierPricing{
			{ID: "tp1", Tier: domain.TierGold, Price: 800, IsActive: true},
		},
		volume: []*domain.VolumeDiscount{
			{ID: "v1", Name: "bulk", MinQuantity: 10, Type: domain.DiscountPercentage, Value: 10, IsActive: true},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)

	res, err := uc.CalculatePrice("widget", domain.PricingContext{
		Quantity:    10,
		PartnerTier: domain.TierGold,
	})
	require.NoError(t, err)

	assert.Equal(t, 720.0, res.FinalPrice)
	require.Len(t, res.Discounts, 2)
	assert.Equal(t, "partner_tier", res.Discounts[0].Type)
	assert.Equal(t, "volume", res.Discounts[1].Type)
	assert.Equal(t, -80.0, res.Discounts[1].Amount)
}

func TestCalculatePriceTierPriceReplaces(t *testing.T) {
	rules := &fakeRuleRepo{
		tierPricing: []*domain.PartnerTierPricing{
			{ID: "tp1", Tier: domain.TierGold, Price: 650, IsActive: true},
			{ID: "tp2", Tier: domain.TierGold, Price: 700, IsActive: true},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)

	res, err := uc.CalculatePrice("widget", domain.PricingContext{
		Quantity:    1,
		PartnerTier: domain.TierGold,
	})
	require.NoError(t, err)

	assert.Equal(t, 650.0, res.FinalPrice)
	require.Len(t, res.Discounts, 1)
	assert.Equal(t, -350.0, res.Discounts[0].Amount)
}

func TestCalculatePricePromotionWindow(t *testing.T) {
	promo := &domain.PromotionalPricing{
		ID:        "p1",
		Name:      "spring sale",
		Type:      domain.DiscountPercentage,
		Value:     15,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	uc := newTestUsecase(widgetRepo(1000), &fakeRuleRepo{promotions: []*domain.PromotionalPricing{promo}})

	inside, err := uc.CalculatePrice("widget", domain.PricingContext{
		Quantity:        1,
		CalculationDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 850.0, inside.FinalPrice)

	outside, err := uc.CalculatePrice("widget", domain.PricingContext{
		Quantity:        1,
		CalculationDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, outside.FinalPrice)
	assert.Empty(t, outside.Discounts)
}

func TestCalculatePriceRegistrationOverride(t *testing.T) {
	rules := &fakeRuleRepo{
		registration: []*domain.DealRegistrationPricing{
			{ID: "r1", Name: "registered deal", MinDealValue: 10000, UnitPrice: 600, IsActive: true},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)

	res, err := uc.CalculatePrice("widget", domain.PricingContext{
		Quantity:           50,
		IsDealRegistration: true,
		DealValue:          50000,
	})
	require.NoError(t, err)

	assert.Equal(t, 600.0, res.FinalPrice)
	assert.True(t, res.RegistrationApplied)
	require.Len(t, res.Discounts, 1)
	assert.Equal(t, "deal_registration", res.Discounts[0].Type)
}

func TestCalculatePriceRegistrationNeverRaises(t *testing.T) {
	// An override above the running price must be skipped.
	rules := &fakeRuleRepo{
		registration: []*domain.DealRegistrationPricing{
			{ID: "r1", Name: "registered deal", UnitPrice: 1200, IsActive: true},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)

	res, err := uc.CalculatePrice("widget", domain.PricingContext{
		Quantity:           1,
		IsDealRegistration: true,
		DealValue:          1000,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, res.FinalPrice)
	assert.False(t, res.RegistrationApplied)
}

func TestCalculatePriceClampsAtZero(t *testing.T) {
	rules := &fakeRuleRepo{
		volume: []*domain.VolumeDiscount{
			{ID: "v1", Name: "oversized", MinQuantity: 1, Type: domain.DiscountFixed, Value: 1500, IsActive: true},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)

	res, err := uc.CalculatePrice("widget", domain.PricingContext{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.FinalPrice)
	assert.Equal(t, 0.0, res.TotalPrice)
}

func TestCalculatePriceProductNotFound(t *testing.T) {
	uc := newTestUsecase(&fakeProductRepo{products: map[string]*domain.Product{}}, &fakeRuleRepo{})

	_, err := uc.CalculatePrice("missing", domain.PricingContext{Quantity: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestCalculatePriceLargestDiscountWins(t *testing.T) {
	rules := &fakeRuleRepo{
		volume: []*domain.VolumeDiscount{
			{ID: "v1", Name: "small", MinQuantity: 1, Type: domain.DiscountPercentage, Value: 5, IsActive: true},
			{ID: "v2", Name: "big", MinQuantity: 1, Type: domain.DiscountFixed, Value: 120, IsActive: true},
			{ID: "v3", Name: "inactive", MinQuantity: 1, Type: domain.DiscountPercentage, Value: 50, IsActive: false},
		},
	}
	uc := newTestUsecase(widgetRepo(1000), rules)

	res, err := uc.CalculatePrice("widget", domain.PricingContext{Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 880.0, res.FinalPrice)
	require.Len(t, res.Discounts, 1)
	assert.Equal(t, "big", res.Discounts[0].Name)
}

func TestCheckProductAvailability(t *testing.T) {
	products := widgetRepo(1000)
	products.availability = map[string][]*domain.ProductAvailability{
		"widget": {
			{ID: "a1", ProductID: "widget", Territory: "Europe", RestrictedTiers: []string{"bronze"}, IsAvailable: true},
		},
	}
	uc := newTestUsecase(products, &fakeRuleRepo{})

	ok, err := uc.CheckProductAvailability("widget", "Europe", domain.TierGold)
	require.NoError(t, err)
	assert.True(t, ok.Available)

	restricted, err := uc.CheckProductAvailability("widget", "Europe", domain.TierBronze)
	require.NoError(t, err)
	assert.False(t, restricted.Available)
	assert.Contains(t, restricted.Reason, "bronze")

	// Rows scoped to another territory do not apply.
	other, err := uc.CheckProductAvailability("widget", "APAC", domain.TierBronze)
	require.NoError(t, err)
	assert.True(t, other.Available)
}

func TestCheckProductAvailabilityInactiveProduct(t *testing.T) {
	products := &fakeProductRepo{
		products: map[string]*domain.Product{
			"widget": {ID: "widget", ListPrice: 1000, IsActive: false},
		},
	}
	uc := newTestUsecase(products, &fakeRuleRepo{})

	res, err := uc.CheckProductAvailability("widget", "Europe", domain.TierGold)
	require.NoError(t, err)
	assert.False(t, res.Available)
}
