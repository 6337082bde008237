package product

import "time"

type Product struct {
	ID         string
	Name       string
	Slug       string
	CategoryID *string
	ImageURL   *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Variants []*Variant
}

// Variant is the purchasable unit. A product without explicit variants
// still has one default variant row carrying its price and stock.
type Variant struct {
	ID        string
	ProductID string
	Name      string
	Price     int64 // minor currency units (whole VND)
	Stock     int
	ImageURL  *string
	IsActive  bool
}

type GetVariantOptions struct {
	VariantID  string
	OnlyActive bool
}

type GetProductOptions struct {
	ProductID  string
	OnlyActive bool
}
