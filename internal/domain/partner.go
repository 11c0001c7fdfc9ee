package domain

type PartnerTier string

const (
	TierGold   PartnerTier = "gold"
	TierSilver PartnerTier = "silver"
	TierBronze PartnerTier = "bronze"
)

// MaxDiscount is the per-tier discount ceiling used by the pricing floor check.
func (t PartnerTier) MaxDiscount() float64 {
	switch t {
	case TierGold:
		return 0.30
	case TierSilver:
		return 0.20
	case TierBronze:
		return 0.10
	default:
		return 0
	}
}

type PartnerStatus string

const (
	PartnerActive    PartnerStatus = "active"
	PartnerSuspended PartnerStatus = "suspended"
)

type Partner struct {
	ID           string
	Name         string
	Tier         PartnerTier
	Territory    string
	Status       PartnerStatus
	ContactEmail string
}

type PartnerRepository interface {
	GetPartnerByID(partnerID string) (*Partner, error)
}
