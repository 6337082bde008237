package httpapi

import (
	"net/http"

	"serein-be/internal/logger"
	"serein-be/internal/metrics"
	"serein-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Category *CategoryHandler
	Coupon   *CouponHandler
	Order    *OrderHandler
	Address  *AddressHandler
}

// NewRouter wires all routes. Shopper routes require authentication;
// catalog reads are public; management routes require the admin role.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/debug/counters", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, metrics.Snapshot())
	})

	// Public catalog
	r.Get("/categories", h.Category.ListCategories)
	r.Get("/categories/{categoryID}/ancestors", h.Category.GetAncestors)

	// Shopper routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Patch("/items/{itemID}", h.Cart.UpdateQuantity)
			r.Delete("/items/{itemID}", h.Cart.RemoveItem)
			r.Post("/coupon", h.Cart.ApplyCoupon)
			r.Delete("/coupon", h.Cart.RemoveCoupon)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/preview", h.Checkout.PreviewSummary)
			r.Post("/sessions", h.Checkout.CreateSession)
			r.Get("/sessions/{sessionID}", h.Checkout.GetSession)
			r.Patch("/sessions/{sessionID}/address", h.Checkout.SetAddress)
			r.Post("/sessions/{sessionID}/confirm", h.Checkout.Confirm)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", h.Address.ListAddresses)
			r.Post("/", h.Address.CreateAddress)
		})

		r.Get("/orders", h.Order.ListOrders)
		r.Get("/orders/{orderID}", h.Order.GetOrder)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireAdmin)

		r.Post("/categories", h.Category.CreateCategory)
		r.Get("/coupons", h.Coupon.ListActive)
		r.Get("/coupons/{code}", h.Coupon.GetByCode)
		r.Post("/coupons", h.Coupon.Create)
		r.Patch("/coupons/{code}/active", h.Coupon.SetActive)
		r.Patch("/orders/{orderID}/status", h.Order.UpdateStatus)
	})

	return r
}
