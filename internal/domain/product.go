package domain

type Product struct {
	ID        string
	Name      string
	Category  string
	ListPrice float64
	IsActive  bool
}

// ProductAvailability scopes a product to a territory and restricts which
// partner tiers may sell it. Empty Territory or RestrictedTiers means no
// restriction of that kind.
type ProductAvailability struct {
	ID              string
	ProductID       string
	Territory       string
	RestrictedTiers []string
	IsAvailable     bool
}

type AvailabilityResult struct {
	Available bool
	Reason    string
}

type ProductRepository interface {
	GetProductByID(productID string) (*Product, error)
	GetProductAvailability(productID string) ([]*ProductAvailability, error)
}
