package coupon

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidCode     = errors.New("invalid coupon code")
	ErrInvalidDiscount = errors.New("invalid discount value")
	ErrEmptyScope      = errors.New("scoped coupon needs at least one applicable id")

	// -- Resource State --
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon is not active")
	ErrCouponNotStarted = errors.New("coupon is not active yet")
	ErrCouponExpired    = errors.New("coupon has expired")
	ErrCouponExhausted  = errors.New("coupon usage limit reached")
	ErrCouponExists     = errors.New("coupon code already exists")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
