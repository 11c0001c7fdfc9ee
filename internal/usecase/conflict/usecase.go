package conflict

import (
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/metrics"
	"github.com/partnerdesk/deal-service/internal/matching"
)

const (
	// Newest-first bound on the existing-deal population scanned per call.
	detectionWindowLimit = 500
	duplicateWindowDays  = 90
)

type DuplicateMatch struct {
	DealID           string
	CompanyName      string
	Similarity       float64
	ValueWithin20Pct bool
}

type ConflictUsecase interface {
	DetectConflicts(deal *domain.Deal) (*domain.ConflictDetectionResult, error)
	DetectConflictsForDeal(dealID string) (*domain.ConflictDetectionResult, error)
	FindPartnerDuplicates(deal *domain.Deal) ([]DuplicateMatch, error)
	CreateConflictRecords(conflicts []*domain.DealConflict) (int, error)
}

type DefaultConflictUsecase struct {
	dealRepo     domain.DealRepository
	conflictRepo domain.ConflictRepository
	metrics      *metrics.DealMetrics
	logger       *slog.Logger
}

func NewDefaultConflictUsecase(
	dealRepo domain.DealRepository,
	conflictRepo domain.ConflictRepository,
	dealMetrics *metrics.DealMetrics,
	logger *slog.Logger,
) *DefaultConflictUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultConflictUsecase{
		dealRepo:     dealRepo,
		conflictRepo: conflictRepo,
		metrics:      dealMetrics,
		logger:       logger,
	}
}

// DetectConflicts runs all detectors against the bounded deal window and
// returns ranked conflicts with advisory suggestions. Detection is advisory:
// a store failure yields a "no conflicts" result, never an error.
func (uc *DefaultConflictUsecase) DetectConflicts(deal *domain.Deal) (*domain.ConflictDetectionResult, error) {
	existing, err := uc.dealRepo.FindDeals(domain.DealWindowFilter{
		ExcludeDealID: deal.ID,
		ExcludeStatus: []domain.DealStatus{domain.StatusRejected},
		Limit:         detectionWindowLimit,
	})
	if err != nil {
		uc.logger.Warn("conflict detection degraded to empty result", "deal_id", deal.ID, "error", err.Error())
		return &domain.ConflictDetectionResult{Conflicts: []*domain.DealConflict{}, Suggestions: []string{}}, nil
	}

	conflicts := make([]*domain.DealConflict, 0)
	for _, other := range existing {
		conflicts = append(conflicts, runDetectors(deal, other)...)
	}
	sortConflicts(conflicts)

	uc.recordDetectionMetrics(conflicts)

	return &domain.ConflictDetectionResult{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
		Suggestions:  buildSuggestions(conflicts),
	}, nil
}

// DetectConflictsForDeal loads a stored deal and runs detection against it.
// The load failure is a real error: without the deal there is nothing to
// advise on.
func (uc *DefaultConflictUsecase) DetectConflictsForDeal(dealID string) (*domain.ConflictDetectionResult, error) {
	deal, err := uc.dealRepo.GetDealByID(dealID)
	if err != nil {
		return nil, err
	}
	return uc.DetectConflicts(deal)
}

// FindPartnerDuplicates is the validation engine's duplicate probe: same
// partner, 90-day window, name similarity at or above the conflict threshold.
func (uc *DefaultConflictUsecase) FindPartnerDuplicates(deal *domain.Deal) ([]DuplicateMatch, error) {
	existing, err := uc.dealRepo.FindDeals(domain.DealWindowFilter{
		PartnerID:     deal.PartnerID,
		Since:         time.Now().AddDate(0, 0, -duplicateWindowDays),
		ExcludeDealID: deal.ID,
		ExcludeStatus: []domain.DealStatus{domain.StatusRejected},
		Limit:         detectionWindowLimit,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]DuplicateMatch, 0)
	for _, other := range existing {
		sim := matching.Similarity(deal.EndCustomer.CompanyName, other.EndCustomer.CompanyName)
		if sim < nameConflictThreshold {
			continue
		}
		matches = append(matches, DuplicateMatch{
			DealID:           other.ID,
			CompanyName:      other.EndCustomer.CompanyName,
			Similarity:       sim,
			ValueWithin20Pct: matching.ValueSimilarity(deal.TotalValue, other.TotalValue, valueSimilarityMax),
		})
	}
	return matches, nil
}

// CreateConflictRecords persists detected conflicts. Conflicts are created
// only here, never inferred from deal state; the store's unordered-pair
// constraint deduplicates, so per-row insert failures are logged and skipped.
func (uc *DefaultConflictUsecase) CreateConflictRecords(conflicts []*domain.DealConflict) (int, error) {
	gen, err := nanoid.Standard(15)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, c := range conflicts {
		c.ID = gen()
		c.Resolution = domain.ResolutionOpen
		c.CreatedAt = time.Now()
		if err := uc.conflictRepo.CreateConflict(c); err != nil {
			uc.logger.Warn("conflict record not created",
				"deal_id", c.DealID, "conflicting_deal_id", c.ConflictingDealID, "error", err.Error())
			continue
		}
		created++
	}
	return created, nil
}

func (uc *DefaultConflictUsecase) recordDetectionMetrics(conflicts []*domain.DealConflict) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordConflictScan()
	for _, c := range conflicts {
		uc.metrics.RecordConflictDetected(string(c.Type), string(c.Severity))
	}
}
