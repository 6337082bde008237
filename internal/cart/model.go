package cart

import (
	"time"

	"serein-be/internal/coupon"
)

// CartItem is one purchasable line in a shopper's cart, assembled from the
// cart row joined with its product, variant and category.
type CartItem struct {
	ID          string  `json:"id"`
	UserID      uint    `json:"userID"`
	ProductID   string  `json:"productID"`
	VariantID   *string `json:"variantID"`
	CategoryID  *string `json:"categoryID"`
	ProductName string  `json:"productName"`
	ImageURL    *string `json:"imageURL"`

	Price    int64 `json:"price"` // unit price, minor currency units
	Quantity int   `json:"quantity"`
	Stock    int   `json:"stock"` // available stock at read time

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LineTotal is always derived, never stored.
func (i *CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart is the snapshot the checkout flow computes against.
type Cart struct {
	UserID uint           `json:"userID"`
	Items  []*CartItem    `json:"items"`
	Coupon *coupon.Coupon `json:"coupon,omitempty"`
}

type AddToCartParams struct {
	UserID    uint
	VariantID string
	Quantity  int
}

type UpdateQuantityParams struct {
	UserID     uint
	CartItemID string
	Quantity   int
}

type RemoveFromCartParams struct {
	UserID     uint
	CartItemID string
}

type CreateCartItemParams struct {
	UserID    uint
	VariantID string
	Quantity  int
}
