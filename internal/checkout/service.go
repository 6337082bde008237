package checkout

import (
	"context"
	"fmt"
	"time"

	"serein-be/internal/address"
	"serein-be/internal/cart"
	"serein-be/internal/category"
	"serein-be/internal/coupon"
	"serein-be/internal/logger"
	"serein-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service drives the checkout flow: summary previews while the shopper
// toggles selections, then a frozen session that an order is created from.
type Service interface {
	PreviewSummary(ctx context.Context, userID uint, selectedIDs []string) (*Summary, error)
	CreateSession(ctx context.Context, userID uint, selectedIDs []string) (*Session, error)
	GetSession(ctx context.Context, userID uint, sessionID uuid.UUID) (*Session, error)
	SetAddress(ctx context.Context, userID uint, sessionID, addressID uuid.UUID) error
	ConfirmSession(ctx context.Context, userID uint, sessionID uuid.UUID) (*Session, error)
}

type service struct {
	repo        Repository
	cartSvc     cart.Service
	categorySvc category.Service
	addressRepo address.Repository
	currency    string
	now         func() time.Time
}

func NewService(
	repo Repository,
	cartSvc cart.Service,
	categorySvc category.Service,
	addressRepo address.Repository,
	currency string,
) Service {
	return &service{
		repo:        repo,
		cartSvc:     cartSvc,
		categorySvc: categorySvc,
		addressRepo: addressRepo,
		currency:    currency,
		now:         time.Now,
	}
}

// loadSelection resolves the selected IDs against the live cart and runs
// the checkout guards: staleness (a selected ID with no cart line) and
// stock shortfall (selected quantity above available stock).
func (s *service) loadSelection(
	ctx context.Context,
	userID uint,
	selectedIDs []string,
) ([]*cart.CartItem, *coupon.Coupon, error) {

	if len(selectedIDs) == 0 {
		return nil, nil, ErrEmptySelection
	}

	c, err := s.cartSvc.GetCart(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	sel := cart.NewSelection(selectedIDs...)
	selected := sel.SelectedItems(c.Items)

	// A dangling selected ID means the cart changed underneath the
	// shopper. Surface it; do not auto-correct the selection.
	if len(selected) != sel.Len() {
		metrics.StaleSelections.Inc()
		return nil, nil, ErrStaleSelection
	}

	for _, it := range selected {
		if it.Quantity > it.Stock {
			metrics.StockShortfalls.Inc()
			return nil, nil, fmt.Errorf("%w: %s", ErrStockShortfall, it.ProductName)
		}
	}

	return selected, c.Coupon, nil
}

// PreviewSummary recomputes the order summary for the current selection.
// Called on every selection toggle, so it does no writes.
func (s *service) PreviewSummary(ctx context.Context, userID uint, selectedIDs []string) (*Summary, error) {
	selected, cpn, err := s.loadSelection(ctx, userID, selectedIDs)
	if err != nil {
		return nil, err
	}

	categories, err := s.categorySvc.GetCategoryMap(ctx)
	if err != nil {
		return nil, err
	}

	sum := ComputeSummary(selected, cpn, categories)
	return &sum, nil
}

// CreateSession freezes the current selection into a checkout session.
func (s *service) CreateSession(ctx context.Context, userID uint, selectedIDs []string) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateSession"),
		zap.Uint("user_id", userID),
	)

	selected, cpn, err := s.loadSelection(ctx, userID, selectedIDs)
	if err != nil {
		return nil, err
	}

	categories, err := s.categorySvc.GetCategoryMap(ctx)
	if err != nil {
		return nil, err
	}

	sum := ComputeSummary(selected, cpn, categories)

	now := s.now()
	session := &Session{
		ID:            uuid.New(),
		UserID:        userID,
		Status:        SessionStatusPending,
		Subtotal:      sum.Subtotal,
		Discount:      sum.Discount,
		Total:         sum.FinalTotal,
		TotalQuantity: sum.TotalQuantity,
		Currency:      s.currency,
		CreatedAt:     now,
		ExpiresAt:     now.Add(sessionTTL),
	}
	if sum.EffectiveCoupon != nil {
		session.CouponCode = &sum.EffectiveCoupon.Code
	}

	for _, it := range selected {
		session.Items = append(session.Items, SessionItem{
			ID:          uuid.New(),
			SessionID:   session.ID,
			CartItemID:  it.ID,
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			CategoryID:  it.CategoryID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		log.Error("failed to create checkout session", zap.Error(err))
		return nil, err
	}

	metrics.SessionsCreated.Inc()
	log.Info("checkout session created",
		zap.String("session_id", session.ID.String()),
		zap.Int64("total", session.Total),
	)
	return session, nil
}

func (s *service) GetSession(ctx context.Context, userID uint, sessionID uuid.UUID) (*Session, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrUnauthorized
	}

	// Expire lazily on read.
	if session.Status == SessionStatusPending && s.now().After(session.ExpiresAt) {
		if err := s.repo.MarkExpired(ctx, sessionID); err != nil {
			return nil, err
		}
		session.Status = SessionStatusExpired
	}

	return session, nil
}

func (s *service) SetAddress(ctx context.Context, userID uint, sessionID, addressID uuid.UUID) error {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Status != SessionStatusPending {
		return ErrSessionExpired
	}

	addr, err := s.addressRepo.GetByID(ctx, userID, addressID)
	if err != nil {
		return err
	}
	if addr == nil {
		return address.ErrAddressNotFound
	}

	return s.repo.UpdateSessionAddress(ctx, sessionID, addressID)
}

// ConfirmSession transitions a pending session to confirmed. The order
// service creates the order from the confirmed session; its recomputed
// totals are the authoritative charge, not anything the client displayed.
// An already confirmed session is returned as-is so a retried confirm
// lands on the order service's per-session idempotency instead of
// losing the session.
func (s *service) ConfirmSession(ctx context.Context, userID uint, sessionID uuid.UUID) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ConfirmSession"),
		zap.String("session_id", sessionID.String()),
	)

	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case SessionStatusPending:
		// fallthrough to confirm
	case SessionStatusConfirmed:
		// Retry after a confirm whose response was lost, or after a
		// transient order insert failure. Hand the session back
		// unchanged and let order creation dedupe by session ID.
		log.Info("session already confirmed, treating as retry")
		return session, nil
	default:
		return nil, ErrSessionExpired
	}

	if session.AddressID == nil {
		return nil, ErrSessionNoAddress
	}

	now := s.now()
	if err := s.repo.MarkConfirmed(ctx, sessionID, now); err != nil {
		log.Error("failed to confirm session", zap.Error(err))
		return nil, err
	}

	session.Status = SessionStatusConfirmed
	session.ConfirmedAt = &now

	metrics.SessionsConfirmed.Inc()
	log.Info("checkout session confirmed")
	return session, nil
}
