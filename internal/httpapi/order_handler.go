package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"serein-be/internal/order"
	"serein-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderSvc order.Service
}

func NewOrderHandler(orderSvc order.Service) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.IsAdmin(r.Context())

	limit := parseInt32(r.URL.Query().Get("limit"), 20)
	page := parseInt32(r.URL.Query().Get("page"), 1)

	orders, err := h.orderSvc.GetOrders(r.Context(), userID, isAdmin, limit, page)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.IsAdmin(r.Context())

	orderID, err := utils.ToUint(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be numeric")
		return
	}

	o, err := h.orderSvc.GetOrderDetail(r.Context(), userID, orderID, isAdmin)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

type UpdateOrderStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ToUint(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be numeric")
		return
	}

	var req UpdateOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.orderSvc.UpdateOrderStatus(r.Context(), orderID, order.OrderStatus(req.Status)); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return fallback
	}
	return int32(n)
}
