package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/contextutil"
	"inkwell/internal/journal"
)

// CategoriesHandler handles HTTP requests for categories.
type CategoriesHandler struct {
	store *journal.Store
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(store *journal.Store) *CategoriesHandler {
	return &CategoriesHandler{store: store}
}

// CreateCategoryRequest is the payload for creating a category. Color is
// optional; when omitted the next palette color is assigned.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// UpdateCategoryRequest is the payload for renaming a category and/or
// changing its color. Empty fields are left untouched.
type UpdateCategoryRequest struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// List returns all categories, newest first.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Categories())
}

// Create creates a category and returns it.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid category payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	category := h.store.CreateCategory(ctx, req.Name, req.Color)
	writeJSON(w, http.StatusCreated, category)
}

// Update renames a category and/or changes its color. Missing ids still
// return 204.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid category payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Name == "" && req.Color == "" {
		writeError(w, http.StatusBadRequest, "name or color is required")
		return
	}

	id := chi.URLParam(r, "id")
	if req.Name != "" {
		h.store.RenameCategory(ctx, id, req.Name)
	}
	if req.Color != "" {
		h.store.UpdateCategoryColor(ctx, id, req.Color)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a category, detaching its entries.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
