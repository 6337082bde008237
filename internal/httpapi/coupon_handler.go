package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"serein-be/internal/coupon"

	"github.com/go-chi/chi/v5"
)

type CouponHandler struct {
	couponSvc coupon.Service
}

func NewCouponHandler(couponSvc coupon.Service) *CouponHandler {
	return &CouponHandler{couponSvc: couponSvc}
}

type CreateCouponRequestDTO struct {
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue int64      `json:"discount_value"`
	MinOrderValue int64      `json:"min_order_value"`
	AppliesTo     string     `json:"applies_to"`
	ApplicableIDs []string   `json:"applicable_ids"`
	StartsAt      *time.Time `json:"starts_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
	MaxUses       *int       `json:"max_uses"`
}

func (h *CouponHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponSvc.ListActive(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, coupons)
}

func (h *CouponHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	c, err := h.couponSvc.GetByCode(r.Context(), code)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.couponSvc.Create(r.Context(), coupon.CreateCouponInput{
		Code:          req.Code,
		DiscountType:  coupon.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		AppliesTo:     coupon.Scope(req.AppliesTo),
		ApplicableIDs: req.ApplicableIDs,
		StartsAt:      req.StartsAt,
		ExpiresAt:     req.ExpiresAt,
		MaxUses:       req.MaxUses,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

type SetCouponActiveRequestDTO struct {
	Active bool `json:"active"`
}

func (h *CouponHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req SetCouponActiveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.couponSvc.SetActive(r.Context(), code, req.Active); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
