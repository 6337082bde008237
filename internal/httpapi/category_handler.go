package httpapi

import (
	"encoding/json"
	"net/http"

	"serein-be/internal/category"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categorySvc category.Service
}

func NewCategoryHandler(categorySvc category.Service) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

type CreateCategoryRequestDTO struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// ListCategories returns the flat category list; the storefront builds
// its own tree/breadcrumbs from the parent references.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("include_inactive") != "true"

	categories, err := h.categorySvc.GetCategories(r.Context(), onlyActive)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetAncestors(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	ancestors, err := h.categorySvc.GetAncestors(r.Context(), categoryID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{"ancestors": ancestors})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return
	}

	c, err := h.categorySvc.AddCategory(r.Context(), req.Name, req.ParentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}
