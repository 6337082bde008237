package coupon

import (
	"context"
	"time"

	"serein-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for coupons.
type Service interface {
	// ValidateForUse returns the coupon if it can currently be applied to
	// a cart. Eligibility against concrete line items is decided later by
	// the summary calculator; this only checks the coupon's own state.
	ValidateForUse(ctx context.Context, code string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	ListActive(ctx context.Context) ([]*Coupon, error)
	Create(ctx context.Context, input CreateCouponInput) (*Coupon, error)
	SetActive(ctx context.Context, code string, active bool) error
}

// service implements the Service interface
type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new coupon service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) ValidateForUse(ctx context.Context, code string) (*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ValidateForUse"),
		zap.String("coupon_code", code),
	)

	if code == "" {
		return nil, ErrInvalidCode
	}

	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		log.Error("failed to get coupon", zap.Error(err))
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}

	if !c.Active {
		return nil, ErrCouponInactive
	}

	now := s.now()
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return nil, ErrCouponNotStarted
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return nil, ErrCouponExpired
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return nil, ErrCouponExhausted
	}

	// A scoped coupon with no target IDs can never discount anything.
	if c.AppliesTo != ScopeAll && len(c.ApplicableIDs) == 0 {
		return nil, ErrEmptyScope
	}

	return c, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	return c, nil
}

func (s *service) ListActive(ctx context.Context) ([]*Coupon, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) Create(ctx context.Context, input CreateCouponInput) (*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("coupon_code", input.Code),
	)
	log.Info("Create coupon started")

	if input.Code == "" {
		return nil, ErrInvalidCode
	}
	if input.DiscountValue <= 0 {
		return nil, ErrInvalidDiscount
	}
	if input.DiscountType == DiscountPercentage && input.DiscountValue > 100 {
		return nil, ErrInvalidDiscount
	}
	if input.AppliesTo != ScopeAll && len(input.ApplicableIDs) == 0 {
		return nil, ErrEmptyScope
	}

	c, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create coupon", zap.Error(err))
		return nil, err
	}

	log.Info("Create coupon success")
	return c, nil
}

func (s *service) SetActive(ctx context.Context, code string, active bool) error {
	return s.repo.SetActive(ctx, code, active)
}
