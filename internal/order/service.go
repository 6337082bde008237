package order

import (
	"context"

	"serein-be/internal/checkout"
	"serein-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// CreateFromSession turns a confirmed checkout session into an order.
	// Idempotent: the same session always yields the same order.
	CreateFromSession(ctx context.Context, session *checkout.Session) (*Order, error)
	GetOrders(ctx context.Context, userID uint, isAdmin bool, limit, page int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, userID, orderID uint, isAdmin bool) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status OrderStatus) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateFromSession(ctx context.Context, session *checkout.Session) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateFromSession"),
		zap.String("session_id", session.ID.String()),
	)

	// 1. Validate session state
	if session.Status != checkout.SessionStatusConfirmed || session.ConfirmedAt == nil {
		return nil, ErrSessionNotConfirmed
	}
	if session.AddressID == nil {
		return nil, checkout.ErrSessionNoAddress
	}

	// 2. Idempotency check
	existing, err := s.repo.GetOrderBySessionID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Info("order already exists for session", zap.Uint("order_id", existing.ID))
		return existing, nil
	}

	// 3. Authoritative totals: recompute the subtotal from the snapshot
	// rather than trusting any figure the client displayed. The discount
	// was fixed server-side when the session was created.
	var subtotal int64
	o := &Order{
		UserID:     session.UserID,
		SessionID:  session.ID,
		AddressID:  *session.AddressID,
		CouponCode: session.CouponCode,
		Discount:   session.Discount,
		Currency:   session.Currency,
		Status:     StatusPending,
	}
	for _, it := range session.Items {
		subtotal += it.LineTotal()
		o.Items = append(o.Items, OrderItem{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}
	o.Subtotal = subtotal
	o.Total = subtotal - o.Discount

	// 4. Transaction boundary
	if err := s.repo.CreateOrderTx(ctx, o, session); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Int64("total", o.Total),
	)
	return o, nil
}

// GetOrders lists the caller's orders; admins see everyone's.
func (s *service) GetOrders(ctx context.Context, userID uint, isAdmin bool, limit, page int32) ([]*Order, error) {
	if isAdmin {
		return s.repo.GetOrders(ctx, nil, limit, page)
	}
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.repo.GetOrders(ctx, &userID, limit, page)
}

// GetOrderDetail returns one order; users only see their own.
func (s *service) GetOrderDetail(ctx context.Context, userID, orderID uint, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

// UpdateOrderStatus moves an order through its lifecycle (admin only).
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uint, status OrderStatus) error {
	validStatuses := map[OrderStatus]bool{
		StatusAccepted: true,
		StatusRejected: true,
		StatusCanceled: true,
	}

	if !validStatuses[status] {
		return ErrInvalidStatus
	}

	return s.repo.UpdateOrderStatus(ctx, orderID, status)
}
