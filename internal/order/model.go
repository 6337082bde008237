package order

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending  OrderStatus = "PENDING"
	StatusAccepted OrderStatus = "ACCEPTED"
	StatusRejected OrderStatus = "REJECTED"
	StatusCanceled OrderStatus = "CANCELED"
)

type Order struct {
	ID        uint
	UserID    uint
	SessionID uuid.UUID
	AddressID uuid.UUID

	CouponCode *string
	Subtotal   int64
	Discount   int64
	Total      int64
	Currency   string

	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItem
}

type OrderItem struct {
	ID      uint
	OrderID uint

	ProductID   string
	VariantID   *string
	ProductName string

	Price    int64
	Quantity int
}

// LineTotal is derived, never stored.
func (i *OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
