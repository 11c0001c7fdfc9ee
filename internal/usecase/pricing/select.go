package pricing

import (
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/matching"
)

// Selection policies. Multiple matching rules of one kind never stack; each
// policy names which single candidate wins for its rule kind.

// lowestTerritoryMultiplier picks the multiplier producing the lowest price.
func lowestTerritoryMultiplier(rules []*domain.TerritoryPricing) *domain.TerritoryPricing {
	var best *domain.TerritoryPricing
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		if best == nil || r.Multiplier < best.Multiplier {
			best = r
		}
	}
	return best
}

// lowestTierPrice picks the cheapest active tier price whose territory scope
// matches. Empty scope applies to all territories.
func lowestTierPrice(rules []*domain.PartnerTierPricing, territory string) *domain.PartnerTierPricing {
	var best *domain.PartnerTierPricing
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		if r.Territory != "" && !matching.TerritoriesOverlap(r.Territory, territory) {
			continue
		}
		if best == nil || r.Price < best.Price {
			best = r
		}
	}
	return best
}

// largestVolumeDiscount picks the in-band, in-scope discount with the largest
// total discount amount and returns the per-unit reduction.
func largestVolumeDiscount(rules []*domain.VolumeDiscount, pctx domain.PricingContext, price float64) (*domain.VolumeDiscount, float64) {
	var best *domain.VolumeDiscount
	var bestUnit float64
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		if pctx.Quantity < r.MinQuantity {
			continue
		}
		if r.MaxQuantity > 0 && pctx.Quantity > r.MaxQuantity {
			continue
		}
		if !scopeMatches(string(r.Tier), r.Territory, pctx) {
			continue
		}
		unit := unitDiscount(r.Type, r.Value, price)
		if best == nil || unit > bestUnit {
			best = r
			bestUnit = unit
		}
	}
	return best, bestUnit
}

// largestPromoDiscount applies volume selection logic plus an active date
// window on the calculation date.
func largestPromoDiscount(rules []*domain.PromotionalPricing, pctx domain.PricingContext, price float64) (*domain.PromotionalPricing, float64) {
	var best *domain.PromotionalPricing
	var bestUnit float64
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		if pctx.CalculationDate.Before(r.StartDate) || pctx.CalculationDate.After(r.EndDate) {
			continue
		}
		if pctx.Quantity < r.MinQuantity {
			continue
		}
		if !scopeMatches(string(r.Tier), r.Territory, pctx) {
			continue
		}
		unit := unitDiscount(r.Type, r.Value, price)
		if best == nil || unit > bestUnit {
			best = r
			bestUnit = unit
		}
	}
	return best, bestUnit
}

// lowestRegistrationPrice picks the cheapest override whose value band
// contains the deal value.
func lowestRegistrationPrice(rules []*domain.DealRegistrationPricing, pctx domain.PricingContext) *domain.DealRegistrationPricing {
	var best *domain.DealRegistrationPricing
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		if pctx.DealValue < r.MinDealValue {
			continue
		}
		if r.MaxDealValue > 0 && pctx.DealValue > r.MaxDealValue {
			continue
		}
		if !scopeMatches(string(r.Tier), r.Territory, pctx) {
			continue
		}
		if best == nil || r.UnitPrice < best.UnitPrice {
			best = r
		}
	}
	return best
}

// unitDiscount converts a rule's value into a per-unit price reduction.
// Percentage rules discount the running price; fixed rules discount by value.
func unitDiscount(discountType domain.DiscountType, value, price float64) float64 {
	if discountType == domain.DiscountPercentage {
		return price * value / 100
	}
	return value
}

func scopeMatches(tier, territory string, pctx domain.PricingContext) bool {
	if tier != "" && domain.PartnerTier(tier) != pctx.PartnerTier {
		return false
	}
	if territory != "" && !matching.TerritoriesOverlap(territory, pctx.Territory) {
		return false
	}
	return true
}
