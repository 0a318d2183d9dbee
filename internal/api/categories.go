package api

import (
	"net/http"

	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/service"
)

// CategoriesHandler serves the category listing.
type CategoriesHandler struct {
	Catalog *service.CatalogService
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, model.CategoryList{Categories: categories})
}

// Get handles GET /api/categories/{id}.
func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.Catalog.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, category)
}
