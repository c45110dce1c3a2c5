package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/contextutil"
	"inkwell/internal/journal"
)

// FoldersHandler handles HTTP requests for folders.
type FoldersHandler struct {
	store *journal.Store
}

// NewFoldersHandler creates a new FoldersHandler.
func NewFoldersHandler(store *journal.Store) *FoldersHandler {
	return &FoldersHandler{store: store}
}

// FolderRequest is the payload for creating or renaming a folder.
type FolderRequest struct {
	Name string `json:"name"`
}

// List returns all folders, newest first.
func (h *FoldersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Folders())
}

// Create creates a folder and returns it.
func (h *FoldersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid folder payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	folder := h.store.CreateFolder(ctx, req.Name)
	writeJSON(w, http.StatusCreated, folder)
}

// Rename replaces a folder's name. Renaming a missing id still returns 204.
func (h *FoldersHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid folder payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	h.store.RenameFolder(ctx, chi.URLParam(r, "id"), req.Name)
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a folder, detaching its entries to the root bucket.
func (h *FoldersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteFolder(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
