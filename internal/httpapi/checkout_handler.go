package httpapi

import (
	"encoding/json"
	"net/http"

	"serein-be/internal/checkout"
	"serein-be/internal/order"
	"serein-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutSvc checkout.Service
	orderSvc    order.Service
}

func NewCheckoutHandler(checkoutSvc checkout.Service, orderSvc order.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc, orderSvc: orderSvc}
}

type SelectionRequestDTO struct {
	// SelectedItemIDs are cart line IDs the shopper checked for checkout.
	SelectedItemIDs []string `json:"selected_item_ids"`
}

type SetAddressRequestDTO struct {
	AddressID string `json:"address_id"`
}

// PreviewSummary recomputes the order summary for the given selection.
// The storefront calls this on every selection toggle; the figures are
// display-only and recomputed again at order creation.
func (h *CheckoutHandler) PreviewSummary(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req SelectionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sum, err := h.checkoutSvc.PreviewSummary(r.Context(), userID, req.SelectedItemIDs)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sum)
}

func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req SelectionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.checkoutSvc.CreateSession(r.Context(), userID, req.SelectedItemIDs)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID")
		return
	}

	session, err := h.checkoutSvc.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID")
		return
	}

	var req SetAddressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_address_id", "address id must be a UUID")
		return
	}

	if err := h.checkoutSvc.SetAddress(r.Context(), userID, sessionID, addressID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Confirm transitions the session and creates the order in one request.
// The order's totals come from the server-side snapshot, never the client.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID")
		return
	}

	session, err := h.checkoutSvc.ConfirmSession(r.Context(), userID, sessionID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	o, err := h.orderSvc.CreateFromSession(r.Context(), session)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, o)
}
