package conflict

import (
	"sort"

	"github.com/partnerdesk/deal-service/internal/domain"
)

// sortConflicts orders by severity, then fixed type priority, then similarity
// score descending.
func sortConflicts(conflicts []*domain.DealConflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Type.TypePriority() != b.Type.TypePriority() {
			return a.Type.TypePriority() > b.Type.TypePriority()
		}
		return a.SimilarityScore > b.SimilarityScore
	})
}

// buildSuggestions derives advisory strings from the conflict set's
// composition. Cosmetic only.
func buildSuggestions(conflicts []*domain.DealConflict) []string {
	if len(conflicts) == 0 {
		return []string{}
	}

	var hasHigh, hasDuplicate, hasTerritory bool
	for _, c := range conflicts {
		if c.Severity == domain.SeverityHigh {
			hasHigh = true
		}
		switch c.Type {
		case domain.ConflictDuplicateEndUser:
			hasDuplicate = true
		case domain.ConflictTerritoryOverlap:
			hasTerritory = true
		}
	}

	suggestions := make([]string, 0, 4)
	if hasHigh {
		suggestions = append(suggestions, "High-severity conflicts found: manual review is strongly recommended before assignment.")
	}
	if hasDuplicate {
		suggestions = append(suggestions, "The end customer appears to be already registered; verify the customer identity with both partners.")
	}
	if hasTerritory {
		suggestions = append(suggestions, "Another partner claims the same territory; check territory assignments before approving.")
	}
	if len(conflicts) > 2 {
		suggestions = append(suggestions, "Multiple conflicts detected; consider disputing the deal until all are resolved.")
	}
	return suggestions
}
