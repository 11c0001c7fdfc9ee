package validation

import (
	"log/slog"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/metrics"
	"github.com/partnerdesk/deal-service/internal/usecase/conflict"
)

// AvailabilityChecker is the slice of the pricing engine validation needs for
// product eligibility.
type AvailabilityChecker interface {
	CheckProductAvailability(productID, territory string, tier domain.PartnerTier) (*domain.AvailabilityResult, error)
}

type ValidationUsecase interface {
	ValidateDeal(deal *domain.Deal) (*domain.ValidationResult, error)
}

type DefaultValidationUsecase struct {
	partnerRepo     domain.PartnerRepository
	productRepo     domain.ProductRepository
	eligibilityRepo domain.EligibilityRuleRepository
	availability    AvailabilityChecker
	conflictUsecase conflict.ConflictUsecase
	metrics         *metrics.DealMetrics
	logger          *slog.Logger
}

func NewDefaultValidationUsecase(
	partnerRepo domain.PartnerRepository,
	productRepo domain.ProductRepository,
	eligibilityRepo domain.EligibilityRuleRepository,
	availability AvailabilityChecker,
	conflictUsecase conflict.ConflictUsecase,
	dealMetrics *metrics.DealMetrics,
	logger *slog.Logger,
) *DefaultValidationUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultValidationUsecase{
		partnerRepo:     partnerRepo,
		productRepo:     productRepo,
		eligibilityRepo: eligibilityRepo,
		availability:    availability,
		conflictUsecase: conflictUsecase,
		metrics:         dealMetrics,
		logger:          logger,
	}
}

type checkResult struct {
	errors   []domain.ValidationIssue
	warnings []domain.ValidationIssue
}

func (r *checkResult) addError(field, code, message string) {
	r.errors = append(r.errors, domain.ValidationIssue{Field: field, Code: code, Message: message})
}

func (r *checkResult) addWarning(field, code, message string) {
	r.warnings = append(r.warnings, domain.ValidationIssue{Field: field, Code: code, Message: message})
}

func (r *checkResult) merge(other checkResult) {
	r.errors = append(r.errors, other.errors...)
	r.warnings = append(r.warnings, other.warnings...)
}

// ValidateDeal runs every check and accumulates, never short-circuits: the
// caller sees all violations in one pass. A store failure degrades the failing
// check to an error result without aborting the rest.
func (uc *DefaultValidationUsecase) ValidateDeal(deal *domain.Deal) (*domain.ValidationResult, error) {
	var result checkResult

	partner, err := uc.partnerRepo.GetPartnerByID(deal.PartnerID)
	if err != nil {
		uc.logger.Warn("partner lookup failed during validation", "deal_id", deal.ID, "error", err.Error())
		result.addError("partner_id", domain.CodeCheckFailed, "partner could not be loaded")
		partner = nil
	}

	result.merge(uc.checkTerritory(deal, partner))
	result.merge(uc.checkProductEligibility(deal, partner))
	result.merge(uc.checkPricingFloor(deal, partner))
	result.merge(uc.checkDealSize(deal, partner))
	result.merge(uc.checkDuplicates(deal))
	result.merge(uc.checkDocumentation(deal))

	out := &domain.ValidationResult{
		IsValid:  len(result.errors) == 0,
		Errors:   emptyIfNil(result.errors),
		Warnings: emptyIfNil(result.warnings),
	}

	if uc.metrics != nil {
		uc.metrics.RecordValidation(out.IsValid)
		for _, issue := range out.Errors {
			uc.metrics.RecordValidationError(issue.Code)
		}
	}
	return out, nil
}

func emptyIfNil(issues []domain.ValidationIssue) []domain.ValidationIssue {
	if issues == nil {
		return []domain.ValidationIssue{}
	}
	return issues
}
