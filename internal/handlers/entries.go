package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/contextutil"
	"inkwell/internal/journal"
)

// dateLayout is the wire format for filter date bounds.
const dateLayout = "2006-01-02"

// EntriesHandler handles HTTP requests for journal entries.
type EntriesHandler struct {
	store *journal.Store
}

// NewEntriesHandler creates a new EntriesHandler.
func NewEntriesHandler(store *journal.Store) *EntriesHandler {
	return &EntriesHandler{store: store}
}

// SaveEntryRequest is the payload for creating or updating an entry.
type SaveEntryRequest struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderID string   `json:"folderId,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// MoveEntryRequest is the payload for moving an entry between folders.
// An empty folder id moves the entry to the root (unfiled) bucket.
type MoveEntryRequest struct {
	FolderID string `json:"folder_id"`
}

// SetCategoryRequest is the payload for assigning an entry's category.
// An empty category id clears it.
type SetCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

// List returns entries passing the optional filters: q (substring of title
// or content), start and end (YYYY-MM-DD, inclusive), folder (folder id, or
// "root" for unfiled; absent means all folders).
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var filter journal.Filter
	query := r.URL.Query()

	filter.Query = query.Get("q")

	if raw := query.Get("start"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			logger.WarnContext(ctx, "invalid start date", "start", raw)
			writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		filter.Start = start
	}
	if raw := query.Get("end"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			logger.WarnContext(ctx, "invalid end date", "end", raw)
			writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
		filter.End = end
	}

	if raw := query.Get("folder"); raw != "" {
		folderID := raw
		if folderID == "root" {
			folderID = ""
		}
		filter.Folder = &folderID
	}

	writeJSON(w, http.StatusOK, h.store.FilteredEntries(filter))
}

// Save creates a new entry or updates an existing one (matched by id).
func (h *EntriesHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid save entry payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	entry := journal.Entry{
		ID:         req.ID,
		Title:      req.Title,
		Content:    req.Content,
		FolderID:   req.FolderID,
		CategoryID: req.Category,
		Tags:       req.Tags,
	}
	if entry.ID != "" {
		if existing, ok := h.store.Entry(entry.ID); ok {
			entry.CreatedAt = existing.CreatedAt
		}
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}

	saved := h.store.SaveEntry(ctx, entry)
	writeJSON(w, status, saved)
}

// Get returns a single entry by id.
func (h *EntriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, ok := h.store.Entry(id)
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete removes an entry. Deleting a missing id still returns 204.
func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteEntry(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Move files an entry under a folder, or back to the root bucket.
func (h *EntriesHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req MoveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid move payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	h.store.MoveEntry(ctx, chi.URLParam(r, "id"), req.FolderID)
	w.WriteHeader(http.StatusNoContent)
}

// SetCategory assigns or clears an entry's category.
func (h *EntriesHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SetCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid category payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	h.store.SetEntryCategory(ctx, chi.URLParam(r, "id"), req.CategoryID)
	w.WriteHeader(http.StatusNoContent)
}

// AddTag attaches a tag to an entry.
func (h *EntriesHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	tag, err := url.PathUnescape(chi.URLParam(r, "tag"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tag encoding")
		return
	}

	h.store.AddTag(r.Context(), chi.URLParam(r, "id"), tag)
	w.WriteHeader(http.StatusNoContent)
}

// RemoveTag detaches a tag from an entry.
func (h *EntriesHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	tag, err := url.PathUnescape(chi.URLParam(r, "tag"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tag encoding")
		return
	}

	h.store.RemoveTag(r.Context(), chi.URLParam(r, "id"), tag)
	w.WriteHeader(http.StatusNoContent)
}
