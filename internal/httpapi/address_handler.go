package httpapi

import (
	"encoding/json"
	"net/http"

	"serein-be/internal/address"
	"serein-be/internal/utils"
)

type AddressHandler struct {
	addressRepo address.Repository
}

func NewAddressHandler(addressRepo address.Repository) *AddressHandler {
	return &AddressHandler{addressRepo: addressRepo}
}

type CreateAddressRequestDTO struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
	SetAsDefault bool    `json:"set_as_default"`
}

func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	addresses, err := h.addressRepo.ListByUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req CreateAddressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	a, err := h.addressRepo.Create(r.Context(), userID, address.CreateAddressInput{
		Name:         req.Name,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, a)
}
