package coupon

import "time"

// DiscountType enumerates the supported discount strategies.
type DiscountType string

const (
	// DiscountPercentage applies a percentage of the eligible subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixedAmount applies a flat amount capped at the eligible subtotal.
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// Scope determines which cart lines a coupon can discount.
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeProducts   Scope = "products"
	ScopeCategories Scope = "categories"
)

type Coupon struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue int64        `json:"discountValue"`
	MinOrderValue int64        `json:"minOrderValue"`
	AppliesTo     Scope        `json:"appliesTo"`

	// ApplicableIDs holds product IDs or category IDs depending on
	// AppliesTo. Empty and meaningless when the scope is "all".
	ApplicableIDs []string `json:"applicableIDs"`

	Active    bool       `json:"active"`
	StartsAt  *time.Time `json:"startsAt"`
	ExpiresAt *time.Time `json:"expiresAt"`

	MaxUses   *int `json:"maxUses"`
	UsedCount int  `json:"usedCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCouponInput struct {
	Code          string
	DiscountType  DiscountType
	DiscountValue int64
	MinOrderValue int64
	AppliesTo     Scope
	ApplicableIDs []string
	StartsAt      *time.Time
	ExpiresAt     *time.Time
	MaxUses       *int
}
