package domain

import "time"

type ConflictType string

const (
	ConflictDuplicateEndUser ConflictType = "duplicate_end_user"
	ConflictTerritoryOverlap ConflictType = "territory_overlap"
	ConflictTiming           ConflictType = "timing_conflict"
)

// TypePriority orders conflict types for ranking; larger wins.
func (t ConflictType) TypePriority() int {
	switch t {
	case ConflictDuplicateEndUser:
		return 3
	case ConflictTerritoryOverlap:
		return 2
	case ConflictTiming:
		return 1
	default:
		return 0
	}
}

type ConflictSeverity string

const (
	SeverityHigh   ConflictSeverity = "high"
	SeverityMedium ConflictSeverity = "medium"
	SeverityLow    ConflictSeverity = "low"
)

func (s ConflictSeverity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

type ResolutionStatus string

const (
	ResolutionOpen      ResolutionStatus = "open"
	ResolutionResolved  ResolutionStatus = "resolved"
	ResolutionDismissed ResolutionStatus = "dismissed"
)

type DealConflict struct {
	ID                string
	DealID            string
	ConflictingDealID string
	Type              ConflictType
	Severity          ConflictSeverity
	SimilarityScore   float64
	Details           string
	Resolution        ResolutionStatus
	CreatedAt         time.Time
}

type ConflictDetectionResult struct {
	HasConflicts bool            `json:"has_conflicts"`
	Conflicts    []*DealConflict `json:"conflicts"`
	Suggestions  []string        `json:"suggestions"`
}

type ConflictRepository interface {
	CreateConflict(conflict *DealConflict) error
	ListConflictsByDeal(dealID string) ([]*DealConflict, error)
}
