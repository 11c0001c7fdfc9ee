package domain

// Stable issue codes returned across the engine boundary so the caller can
// render per-field feedback.
const (
	CodeTerritoryMismatch = "territory_mismatch"
	CodeProductRestricted = "product_restricted"
	CodeProductInactive   = "product_inactive"
	CodePriceBelowFloor   = "price_below_floor"
	CodeSteepDiscount     = "steep_discount"
	CodeDealSizeExceeded  = "deal_size_exceeded"
	CodeHighValueDeal     = "high_value_deal"
	CodeDuplicateDeal     = "duplicate_deal"
	CodeSimilarDeal       = "similar_deal"
	CodeDocsRequired      = "docs_required"
	CodeCheckFailed       = "check_failed"
)

type ValidationIssue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// EligibilityRule is reference configuration consumed by validation:
// territory_exact_match demands a hard territory match for its scope,
// max_deal_size caps the summed line total per tier.
type EligibilityRule struct {
	ID       string
	RuleType string
	Tier     PartnerTier
	MaxValue float64
	IsActive bool
}

const (
	RuleTerritoryExactMatch = "territory_exact_match"
	RuleMaxDealSize         = "max_deal_size"
)

type EligibilityRuleRepository interface {
	GetEligibilityRules(ruleType string) ([]*EligibilityRule, error)
}
