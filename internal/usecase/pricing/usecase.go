package pricing

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/metrics"
	"github.com/partnerdesk/deal-service/internal/matching"
)

type PricingUsecase interface {
	CalculatePrice(productID string, pctx domain.PricingContext) (*domain.PricingResult, error)
	CheckProductAvailability(productID, territory string, tier domain.PartnerTier) (*domain.AvailabilityResult, error)
}

type DefaultPricingUsecase struct {
	productRepo domain.ProductRepository
	ruleRepo    domain.PricingRuleRepository
	metrics     *metrics.DealMetrics
	logger      *slog.Logger
}

func NewDefaultPricingUsecase(
	productRepo domain.ProductRepository,
	ruleRepo domain.PricingRuleRepository,
	dealMetrics *metrics.DealMetrics,
	logger *slog.Logger,
) *DefaultPricingUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultPricingUsecase{
		productRepo: productRepo,
		ruleRepo:    ruleRepo,
		metrics:     dealMetrics,
		logger:      logger,
	}
}

// stageState is the (price, trail) pair threaded through the stage fold.
// Stages return a new state instead of mutating shared accumulators.
type stageState struct {
	price               float64
	trail               []domain.AppliedDiscount
	registrationApplied bool
}

func (st stageState) withPrice(price float64, entry domain.AppliedDiscount) stageState {
	trail := make([]domain.AppliedDiscount, len(st.trail), len(st.trail)+1)
	copy(trail, st.trail)
	return stageState{
		price:               price,
		trail:               append(trail, entry),
		registrationApplied: st.registrationApplied,
	}
}

type stage func(uc *DefaultPricingUsecase, productID string, pctx domain.PricingContext, st stageState) (stageState, error)

// The adjustment stack. Order is part of the contract: every stage operates on
// the output price of the previous one, not the list price.
var stages = []stage{
	territoryStage,
	tierPriceStage,
	volumeStage,
	promotionStage,
	registrationStage,
}

// CalculatePrice folds the pricing stack over the product's list price and
// returns the final price with a discount audit trail. A missing product is a
// hard failure; pricing without product context is meaningless.
func (uc *DefaultPricingUsecase) CalculatePrice(productID string, pctx domain.PricingContext) (*domain.PricingResult, error) {
	product, err := uc.productRepo.GetProductByID(productID)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", productID, domain.ErrProductNotFound)
	}

	if pctx.Quantity <= 0 {
		pctx.Quantity = 1
	}
	if pctx.CalculationDate.IsZero() {
		pctx.CalculationDate = time.Now()
	}

	st := stageState{price: product.ListPrice, trail: []domain.AppliedDiscount{}}
	for _, apply := range stages {
		st, err = apply(uc, productID, pctx, st)
		if err != nil {
			return nil, err
		}
	}

	if st.price < 0 {
		st.price = 0
	}

	uc.recordCalculation(product.ListPrice, st.price)

	return &domain.PricingResult{
		ProductID:           productID,
		ListPrice:           product.ListPrice,
		FinalPrice:          st.price,
		Quantity:            pctx.Quantity,
		TotalPrice:          st.price * float64(pctx.Quantity),
		Discounts:           st.trail,
		RegistrationApplied: st.registrationApplied,
	}, nil
}

// CheckProductAvailability reports whether a product can be sold in the given
// territory by the given tier.
func (uc *DefaultPricingUsecase) CheckProductAvailability(productID, territory string, tier domain.PartnerTier) (*domain.AvailabilityResult, error) {
	product, err := uc.productRepo.GetProductByID(productID)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", productID, domain.ErrProductNotFound)
	}
	if !product.IsActive {
		return &domain.AvailabilityResult{Available: false, Reason: "product is not active"}, nil
	}

	rows, err := uc.productRepo.GetProductAvailability(productID)
	if err != nil {
		return nil, fmt.Errorf("load availability for product %s: %w", productID, err)
	}

	for _, row := range rows {
		if row.Territory != "" && !matching.TerritoriesOverlap(row.Territory, territory) {
			continue
		}
		if !row.IsAvailable {
			return &domain.AvailabilityResult{Available: false, Reason: "product is not available in this territory"}, nil
		}
		for _, restricted := range row.RestrictedTiers {
			if domain.PartnerTier(restricted) == tier {
				return &domain.AvailabilityResult{
					Available: false,
					Reason:    fmt.Sprintf("product is restricted for %s tier partners", tier),
				}, nil
			}
		}
	}
	return &domain.AvailabilityResult{Available: true}, nil
}

func (uc *DefaultPricingUsecase) recordCalculation(listPrice, finalPrice float64) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordPriceCalculation(listPrice - finalPrice)
}
