package conflict

import (
	"fmt"
	"strings"

	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/matching"
)

const (
	nameConflictThreshold  = 0.85
	nameHighThreshold      = 0.95
	nameWeakThreshold      = 0.70
	emailHighThreshold     = 0.80
	valueSimilarityMax     = 0.20
	timingWindowDays       = 90
	timingHighWindowDays   = 7
	timingMediumWindowDays = 30
)

// runDetectors applies the three independent detectors to a candidate pair
// and unions their results.
func runDetectors(deal, other *domain.Deal) []*domain.DealConflict {
	conflicts := make([]*domain.DealConflict, 0, 3)
	if c := detectDuplicateEndUser(deal, other); c != nil {
		conflicts = append(conflicts, c)
	}
	if c := detectTerritoryOverlap(deal, other); c != nil {
		conflicts = append(conflicts, c)
	}
	if c := detectTimingConflict(deal, other); c != nil {
		conflicts = append(conflicts, c)
	}
	return conflicts
}

func detectDuplicateEndUser(deal, other *domain.Deal) *domain.DealConflict {
	sim := matching.Similarity(deal.EndCustomer.CompanyName, other.EndCustomer.CompanyName)
	if sim < nameConflictThreshold {
		return nil
	}

	severity := domain.SeverityMedium
	emailSim := matching.StringSimilarity(
		strings.ToLower(deal.EndCustomer.ContactEmail),
		strings.ToLower(other.EndCustomer.ContactEmail),
	)
	if sim >= nameHighThreshold || emailSim >= emailHighThreshold || deal.PartnerID == other.PartnerID {
		severity = domain.SeverityHigh
	}

	return &domain.DealConflict{
		DealID:            deal.ID,
		ConflictingDealID: other.ID,
		Type:              domain.ConflictDuplicateEndUser,
		Severity:          severity,
		SimilarityScore:   sim,
		Details: fmt.Sprintf("end customer %q matches %q (similarity %.2f)",
			deal.EndCustomer.CompanyName, other.EndCustomer.CompanyName, sim),
	}
}

func detectTerritoryOverlap(deal, other *domain.Deal) *domain.DealConflict {
	// Same partner competing with itself over a territory is not a conflict.
	if deal.PartnerID == other.PartnerID {
		return nil
	}
	if !matching.TerritoriesOverlap(deal.EndCustomer.Territory, other.EndCustomer.Territory) {
		return nil
	}

	sim := matching.Similarity(deal.EndCustomer.CompanyName, other.EndCustomer.CompanyName)
	severity := domain.SeverityMedium
	if sim >= nameWeakThreshold {
		severity = domain.SeverityHigh
	}

	return &domain.DealConflict{
		DealID:            deal.ID,
		ConflictingDealID: other.ID,
		Type:              domain.ConflictTerritoryOverlap,
		Severity:          severity,
		SimilarityScore:   sim,
		Details: fmt.Sprintf("territory %q overlaps %q claimed by another partner",
			deal.EndCustomer.Territory, other.EndCustomer.Territory),
	}
}

func detectTimingConflict(deal, other *domain.Deal) *domain.DealConflict {
	elapsed := deal.CreatedAt.Sub(other.CreatedAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := int(elapsed.Hours() / 24)
	if days > timingWindowDays {
		return nil
	}

	sim := matching.Similarity(deal.EndCustomer.CompanyName, other.EndCustomer.CompanyName)
	if sim < nameWeakThreshold {
		return nil
	}
	if !matching.ValueSimilarity(deal.TotalValue, other.TotalValue, valueSimilarityMax) {
		return nil
	}

	severity := domain.SeverityLow
	switch {
	case days <= timingHighWindowDays:
		severity = domain.SeverityHigh
	case days <= timingMediumWindowDays:
		severity = domain.SeverityMedium
	}

	return &domain.DealConflict{
		DealID:            deal.ID,
		ConflictingDealID: other.ID,
		Type:              domain.ConflictTiming,
		Severity:          severity,
		SimilarityScore:   sim,
		Details: fmt.Sprintf("similar deal submitted %d days apart with value within %d%%",
			days, int(valueSimilarityMax*100)),
	}
}
