package models

import "time"

// DealConflictModel pairs are unique per unordered (deal, conflicting deal)
// pair, enforced by an expression index in migrations.
type DealConflictModel struct {
	ID                string `gorm:"primaryKey"`
	DealID            string `gorm:"type:uuid;index:idx_conflicts_deal"`
	ConflictingDealID string `gorm:"type:uuid"`
	Type              string
	Severity          string
	SimilarityScore   float64
	Details           string
	Resolution        string `gorm:"default:open"`
	CreatedAt         time.Time
}
