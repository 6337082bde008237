package checkout

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusConfirmed SessionStatus = "CONFIRMED"
	SessionStatusExpired   SessionStatus = "EXPIRED"
	SessionStatusCanceled  SessionStatus = "CANCELLED"
)

// sessionTTL is how long a pending session stays usable before the
// shopper has to start over from the cart.
const sessionTTL = 30 * time.Minute

// Session freezes a checkout attempt: the selected lines, their prices at
// selection time, and the server-computed totals. Totals are recomputed
// from the snapshot at confirmation; nothing the client sends is trusted.
type Session struct {
	ID     uuid.UUID     `json:"id"`
	UserID uint          `json:"userID"`
	Status SessionStatus `json:"status"`

	Items []SessionItem `json:"items"`

	CouponCode *string    `json:"couponCode"`
	AddressID  *uuid.UUID `json:"addressID"`

	// Pricing (server-calculated only)
	Subtotal      int64  `json:"subtotal"`
	Discount      int64  `json:"discount"`
	Total         int64  `json:"total"`
	TotalQuantity int    `json:"totalQuantity"`
	Currency      string `json:"currency"`

	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
}

type SessionItem struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionID"`

	CartItemID  string  `json:"cartItemID"`
	ProductID   string  `json:"productID"`
	VariantID   *string `json:"variantID"`
	CategoryID  *string `json:"categoryID"`
	ProductName string  `json:"productName"`

	Price    int64 `json:"price"`
	Quantity int   `json:"quantity"`
}

// LineTotal is derived, never stored.
func (i *SessionItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
