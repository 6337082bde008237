package cart

import (
	"context"
	"errors"

	"serein-be/internal/coupon"
	"serein-be/internal/logger"
	"serein-be/internal/product"

	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Cache implementations when no cart is cached.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a read-through cache of assembled carts, invalidated on every
// cart mutation.
type Cache interface {
	Get(ctx context.Context, userID uint) (*Cart, error)
	Set(ctx context.Context, userID uint, cart *Cart) error
	Delete(ctx context.Context, userID uint) error
}

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddToCartParams) (*CartItem, error)
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error
	RemoveFromCart(ctx context.Context, params RemoveFromCartParams) error
	ClearCart(ctx context.Context, userID uint) error
	ApplyCoupon(ctx context.Context, userID uint, code string) (*coupon.Coupon, error)
	RemoveCoupon(ctx context.Context, userID uint) error
}

// service implements the Service interface
type service struct {
	repo        Repository
	productRepo product.Repository
	couponSvc   coupon.Service
	cache       Cache
}

// NewService creates a new cart service. cache may be nil.
func NewService(repo Repository, productRepo product.Repository, couponSvc coupon.Service, cache Cache) Service {
	return &service{repo: repo, productRepo: productRepo, couponSvc: couponSvc, cache: cache}
}

// AddToCart adds a product variant to a user's cart
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*CartItem, error) {
	if params.UserID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// 1. Get variant (only active products allowed)
	variant, err := s.productRepo.GetProductVariantByID(ctx, product.GetVariantOptions{
		VariantID:  params.VariantID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrProductNotFound
	}

	// 2. Get existing cart item (if any)
	existing, err := s.repo.GetCartItemByUserAndVariant(ctx, params.UserID, params.VariantID)
	if err != nil {
		return nil, err
	}

	// 3. Calculate final quantity
	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	// 4. Validate stock
	if variant.Stock < finalQty {
		return nil, ErrInsufficientStock
	}

	// 5. Create or update cart item
	var item *CartItem
	if existing == nil {
		item, err = s.repo.CreateCartItem(ctx, CreateCartItemParams{
			UserID:    params.UserID,
			VariantID: params.VariantID,
			Quantity:  params.Quantity,
		})
	} else {
		err = s.repo.UpdateCartItemQuantity(ctx, params.UserID, existing.ID, finalQty)
		if err == nil {
			item, err = s.repo.GetCartItemByID(ctx, params.UserID, existing.ID)
		}
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, params.UserID)
	return item, nil
}

// GetCart assembles the cart snapshot: line items plus the applied coupon.
// An applied coupon that no longer validates is returned as nil rather
// than an error; losing a discount is an advisory condition, not a failure.
func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCart"),
		zap.Uint("user_id", userID),
	)

	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Warn("cart cache read failed", zap.Error(err))
		}
	}

	items, err := s.repo.GetCartItems(ctx, userID)
	if err != nil {
		log.Error("failed to get cart items", zap.Error(err))
		return nil, err
	}

	c := &Cart{UserID: userID, Items: items}

	code, err := s.repo.GetAppliedCouponCode(ctx, userID)
	if err != nil {
		log.Error("failed to get applied coupon", zap.Error(err))
		return nil, err
	}
	if code != nil {
		cpn, err := s.couponSvc.ValidateForUse(ctx, *code)
		if err != nil {
			log.Info("applied coupon no longer valid", zap.String("coupon_code", *code), zap.Error(err))
		} else {
			c.Coupon = cpn
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, c); err != nil {
			log.Warn("cart cache write failed", zap.Error(err))
		}
	}

	return c, nil
}

// UpdateQuantity updates the quantity of a cart line; zero or negative
// removes the line.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error {
	if params.UserID == 0 {
		return ErrUserNotAuthenticated
	}
	if params.CartItemID == "" {
		return ErrCartItemNotFound
	}

	if params.Quantity <= 0 {
		return s.RemoveFromCart(ctx, RemoveFromCartParams{
			UserID:     params.UserID,
			CartItemID: params.CartItemID,
		})
	}

	item, err := s.repo.GetCartItemByID(ctx, params.UserID, params.CartItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if params.Quantity > item.Stock {
		return ErrInsufficientStock
	}

	if err := s.repo.UpdateCartItemQuantity(ctx, params.UserID, params.CartItemID, params.Quantity); err != nil {
		return err
	}

	s.invalidate(ctx, params.UserID)
	return nil
}

// RemoveFromCart deletes a line from the user's cart
func (s *service) RemoveFromCart(ctx context.Context, params RemoveFromCartParams) error {
	if params.UserID == 0 {
		return ErrUserNotAuthenticated
	}
	if params.CartItemID == "" {
		return ErrCartItemNotFound
	}

	if err := s.repo.RemoveFromCart(ctx, params); err != nil {
		return err
	}

	s.invalidate(ctx, params.UserID)
	return nil
}

// ClearCart removes all items for a given user
func (s *service) ClearCart(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}

	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// ApplyCoupon validates the coupon and attaches it to the user's cart.
// Whether it actually discounts anything depends on the selected items and
// is decided by the summary calculator.
func (s *service) ApplyCoupon(ctx context.Context, userID uint, code string) (*coupon.Coupon, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	cpn, err := s.couponSvc.ValidateForUse(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetAppliedCouponCode(ctx, userID, &cpn.Code); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return cpn, nil
}

func (s *service) RemoveCoupon(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}

	if err := s.repo.SetAppliedCouponCode(ctx, userID, nil); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, userID); err != nil {
		logger.FromCtx(ctx).Warn("cart cache invalidation failed",
			zap.Uint("user_id", userID), zap.Error(err))
	}
}
