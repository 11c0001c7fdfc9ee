package validation

import (
	"fmt"
	"strings"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/matching"
)

const (
	// High-value advisory fires regardless of any configured ceiling.
	highValueAdvisoryThreshold = 100_000

	// Documentation bands.
	docsQuoteThreshold    = 10_000
	docsContractThreshold = 50_000

	// Duplicate thresholds mirror the conflict engine's.
	duplicateErrorSimilarity   = 0.85
	duplicateWarningSimilarity = 0.95

	steepDiscountFloor = 0.80
)

func (uc *DefaultValidationUsecase) checkTerritory(deal *domain.Deal, partner *domain.Partner) checkResult {
	var r checkResult
	if partner == nil {
		return r
	}

	customerTerritory := deal.EndCustomer.Territory
	exact := strings.EqualFold(strings.TrimSpace(customerTerritory), strings.TrimSpace(partner.Territory))
	overlap := matching.TerritoriesOverlap(customerTerritory, partner.Territory)

	exactRequired, err := uc.exactMatchRequired(partner.Tier)
	if err != nil {
		uc.logger.Warn("territory rule lookup failed", "deal_id", deal.ID, "error", err.Error())
		r.addError("end_customer.territory", domain.CodeCheckFailed, "territory rules could not be loaded")
		return r
	}

	switch {
	case exact:
		// ok
	case overlap && exactRequired:
		r.addError("end_customer.territory", domain.CodeTerritoryMismatch,
			fmt.Sprintf("territory %q must exactly match partner territory %q", customerTerritory, partner.Territory))
	case overlap:
		// equivalent region, acceptable
	case exactRequired:
		r.addError("end_customer.territory", domain.CodeTerritoryMismatch,
			fmt.Sprintf("territory %q is outside partner territory %q", customerTerritory, partner.Territory))
	default:
		r.addWarning("end_customer.territory", domain.CodeTerritoryMismatch,
			fmt.Sprintf("territory %q does not overlap partner territory %q", customerTerritory, partner.Territory))
	}
	return r
}

func (uc *DefaultValidationUsecase) exactMatchRequired(tier domain.PartnerTier) (bool, error) {
	rules, err := uc.eligibilityRepo.GetEligibilityRules(domain.RuleTerritoryExactMatch)
	if err != nil {
		return false, err
	}
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if rule.Tier == "" || rule.Tier == tier {
			return true, nil
		}
	}
	return false, nil
}

func (uc *DefaultValidationUsecase) checkProductEligibility(deal *domain.Deal, partner *domain.Partner) checkResult {
	var r checkResult
	if partner == nil {
		return r
	}

	for i, line := range deal.Lines {
		field := fmt.Sprintf("lines[%d].product_id", i)
		avail, err := uc.availability.CheckProductAvailability(line.ProductID, deal.EndCustomer.Territory, partner.Tier)
		if err != nil {
			uc.logger.Warn("availability check failed", "deal_id", deal.ID, "product_id", line.ProductID, "error", err.Error())
			r.addError(field, domain.CodeCheckFailed, "product availability could not be checked")
			continue
		}
		if !avail.Available {
			r.addError(field, domain.CodeProductRestricted, avail.Reason)
		}
	}
	return r
}

func (uc *DefaultValidationUsecase) checkPricingFloor(deal *domain.Deal, partner *domain.Partner) checkResult {
	var r checkResult
	if partner == nil {
		return r
	}

	maxDiscount := partner.Tier.MaxDiscount()
	for i, line := range deal.Lines {
		field := fmt.Sprintf("lines[%d].unit_price", i)
		product, err := uc.productRepo.GetProductByID(line.ProductID)
		if err != nil {
			uc.logger.Warn("product lookup failed during floor check", "deal_id", deal.ID, "product_id", line.ProductID, "error", err.Error())
			r.addError(field, domain.CodeCheckFailed, "product could not be loaded for price check")
			continue
		}

		floor := product.ListPrice * (1 - maxDiscount)
		if line.UnitPrice < floor {
			r.addError(field, domain.CodePriceBelowFloor,
				fmt.Sprintf("price %.2f is below the %s tier floor %.2f", line.UnitPrice, partner.Tier, floor))
		}
		if line.UnitPrice < product.ListPrice*steepDiscountFloor {
			r.addWarning(field, domain.CodeSteepDiscount,
				fmt.Sprintf("price %.2f is more than %d%% below list price %.2f",
					line.UnitPrice, int((1-steepDiscountFloor)*100), product.ListPrice))
		}
	}
	return r
}

func (uc *DefaultValidationUsecase) checkDealSize(deal *domain.Deal, partner *domain.Partner) checkResult {
	var r checkResult

	total := 0.0
	for _, line := range deal.Lines {
		total += line.Total()
	}

	if total > highValueAdvisoryThreshold {
		r.addWarning("total_value", domain.CodeHighValueDeal,
			fmt.Sprintf("deal value %.2f exceeds %d and will draw extra scrutiny", total, highValueAdvisoryThreshold))
	}

	if partner == nil {
		return r
	}

	rules, err := uc.eligibilityRepo.GetEligibilityRules(domain.RuleMaxDealSize)
	if err != nil {
		uc.logger.Warn("deal size rule lookup failed", "deal_id", deal.ID, "error", err.Error())
		r.addError("total_value", domain.CodeCheckFailed, "deal size rules could not be loaded")
		return r
	}

	// Strictest applicable ceiling wins.
	ceiling := 0.0
	for _, rule := range rules {
		if !rule.IsActive || rule.MaxValue <= 0 {
			continue
		}
		if rule.Tier != "" && rule.Tier != partner.Tier {
			continue
		}
		if ceiling == 0 || rule.MaxValue < ceiling {
			ceiling = rule.MaxValue
		}
	}
	if ceiling > 0 && total > ceiling {
		r.addError("total_value", domain.CodeDealSizeExceeded,
			fmt.Sprintf("deal value %.2f exceeds the %s tier ceiling %.2f", total, partner.Tier, ceiling))
	}
	return r
}

func (uc *DefaultValidationUsecase) checkDuplicates(deal *domain.Deal) checkResult {
	var r checkResult

	matches, err := uc.conflictUsecase.FindPartnerDuplicates(deal)
	if err != nil {
		uc.logger.Warn("duplicate check failed", "deal_id", deal.ID, "error", err.Error())
		r.addError("end_customer.company_name", domain.CodeCheckFailed, "duplicate check could not be completed")
		return r
	}

	for _, m := range matches {
		if m.Similarity >= duplicateErrorSimilarity && m.ValueWithin20Pct {
			r.addError("end_customer.company_name", domain.CodeDuplicateDeal,
				fmt.Sprintf("deal %s for %q looks like a duplicate (similarity %.2f)", m.DealID, m.CompanyName, m.Similarity))
		}
		if m.Similarity >= duplicateWarningSimilarity {
			r.addWarning("end_customer.company_name", domain.CodeSimilarDeal,
				fmt.Sprintf("deal %s registered a very similar customer %q", m.DealID, m.CompanyName))
		}
	}
	return r
}

// checkDocumentation surfaces value-banded document requirements as warnings
// only; document upload lives outside this pipeline.
func (uc *DefaultValidationUsecase) checkDocumentation(deal *domain.Deal) checkResult {
	var r checkResult

	total := 0.0
	for _, line := range deal.Lines {
		total += line.Total()
	}

	if total > docsContractThreshold {
		r.addWarning("documents", domain.CodeDocsRequired,
			"deals of this size require a signed contract and financial verification")
	} else if total > docsQuoteThreshold {
		r.addWarning("documents", domain.CodeDocsRequired,
			"deals of this size require a customer quote and technical specification")
	}
	return r
}
