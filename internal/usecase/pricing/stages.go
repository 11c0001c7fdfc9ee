package pricing

import (
	"fmt"

	"github.com/partnerdesk/deal-service/internal/domain"
)

func territoryStage(uc *DefaultPricingUsecase, productID string, pctx domain.PricingContext, st stageState) (stageState, error) {
	rules, err := uc.ruleRepo.GetTerritoryPricing(productID, pctx.Territory)
	if err != nil {
		return st, fmt.Errorf("territory pricing lookup: %w", err)
	}

	rule := lowestTerritoryMultiplier(rules)
	if rule == nil {
		return st, nil
	}

	adjusted := st.price * rule.Multiplier
	return st.withPrice(adjusted, domain.AppliedDiscount{
		Type:   "territory",
		Name:   fmt.Sprintf("territory adjustment (%s)", rule.Territory),
		Amount: adjusted - st.price,
	}), nil
}

func tierPriceStage(uc *DefaultPricingUsecase, productID string, pctx domain.PricingContext, st stageState) (stageState, error) {
	rules, err := uc.ruleRepo.GetPartnerTierPricing(productID, pctx.PartnerTier)
	if err != nil {
		return st, fmt.Errorf("partner tier pricing lookup: %w", err)
	}

	rule := lowestTierPrice(rules, pctx.Territory)
	if rule == nil {
		return st, nil
	}

	// Tier pricing replaces the running price, it does not discount it.
	return st.withPrice(rule.Price, domain.AppliedDiscount{
		Type:   "partner_tier",
		Name:   fmt.Sprintf("%s tier price", rule.Tier),
		Amount: rule.Price - st.price,
	}), nil
}

func volumeStage(uc *DefaultPricingUsecase, productID string, pctx domain.PricingContext, st stageState) (stageState, error) {
	rules, err := uc.ruleRepo.GetVolumeDiscounts(productID)
	if err != nil {
		return st, fmt.Errorf("volume discount lookup: %w", err)
	}

	rule, unitDiscount := largestVolumeDiscount(rules, pctx, st.price)
	if rule == nil {
		return st, nil
	}

	entry := domain.AppliedDiscount{
		Type:   "volume",
		Name:   rule.Name,
		Amount: -unitDiscount,
	}
	if rule.Type == domain.DiscountPercentage {
		entry.Percentage = rule.Value
	}
	return st.withPrice(st.price-unitDiscount, entry), nil
}

func promotionStage(uc *DefaultPricingUsecase, productID string, pctx domain.PricingContext, st stageState) (stageState, error) {
	rules, err := uc.ruleRepo.GetPromotionalPricing(productID)
	if err != nil {
		return st, fmt.Errorf("promotional pricing lookup: %w", err)
	}

	rule, unitDiscount := largestPromoDiscount(rules, pctx, st.price)
	if rule == nil {
		return st, nil
	}

	entry := domain.AppliedDiscount{
		Type:   "promotional",
		Name:   rule.Name,
		Amount: -unitDiscount,
	}
	if rule.Type == domain.DiscountPercentage {
		entry.Percentage = rule.Value
	}
	return st.withPrice(st.price-unitDiscount, entry), nil
}

func registrationStage(uc *DefaultPricingUsecase, productID string, pctx domain.PricingContext, st stageState) (stageState, error) {
	if !pctx.IsDealRegistration || pctx.DealValue <= 0 {
		return st, nil
	}

	rules, err := uc.ruleRepo.GetDealRegistrationPricing(productID)
	if err != nil {
		return st, fmt.Errorf("deal registration pricing lookup: %w", err)
	}

	rule := lowestRegistrationPrice(rules, pctx)
	if rule == nil || rule.UnitPrice >= st.price {
		return st, nil
	}

	next := st.withPrice(rule.UnitPrice, domain.AppliedDiscount{
		Type:   "deal_registration",
		Name:   rule.Name,
		Amount: rule.UnitPrice - st.price,
	})
	next.registrationApplied = true
	return next, nil
}
