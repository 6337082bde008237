package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"serein-be/internal/address"
	"serein-be/internal/cart"
	"serein-be/internal/checkout"
	"serein-be/internal/coupon"
	"serein-be/internal/order"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	})
}

// respondDomainError maps domain sentinel errors onto HTTP statuses. The
// checkout conditions are deliberately distinguishable so the storefront
// can redirect (stale/stock) versus merely advise (coupon problems).
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrStaleSelection):
		respondError(w, http.StatusConflict, "stale_selection", err.Error())
	case errors.Is(err, checkout.ErrStockShortfall):
		respondError(w, http.StatusConflict, "stock_shortfall", err.Error())
	case errors.Is(err, checkout.ErrEmptySelection):
		respondError(w, http.StatusBadRequest, "empty_selection", err.Error())
	case errors.Is(err, checkout.ErrSessionNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, coupon.ErrCouponNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, checkout.ErrSessionExpired),
		errors.Is(err, checkout.ErrSessionConfirmed),
		errors.Is(err, checkout.ErrSessionNoAddress),
		errors.Is(err, order.ErrSessionNotConfirmed):
		respondError(w, http.StatusConflict, "session_state", err.Error())
	case errors.Is(err, cart.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, coupon.ErrInvalidCode),
		errors.Is(err, coupon.ErrInvalidDiscount),
		errors.Is(err, coupon.ErrEmptyScope),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, address.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, coupon.ErrCouponInactive),
		errors.Is(err, coupon.ErrCouponNotStarted),
		errors.Is(err, coupon.ErrCouponExpired),
		errors.Is(err, coupon.ErrCouponExhausted):
		respondError(w, http.StatusUnprocessableEntity, "coupon_rejected", err.Error())
	case errors.Is(err, coupon.ErrCouponExists):
		respondError(w, http.StatusConflict, "coupon_exists", err.Error())
	case errors.Is(err, cart.ErrUserNotAuthenticated),
		errors.Is(err, checkout.ErrUnauthorized),
		errors.Is(err, order.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
