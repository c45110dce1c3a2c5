package handlers

import (
	"net/http"

	"inkwell/internal/journal"
)

// TagsHandler serves the union of tags across all entries.
type TagsHandler struct {
	store *journal.Store
}

// NewTagsHandler creates a new TagsHandler.
func NewTagsHandler(store *journal.Store) *TagsHandler {
	return &TagsHandler{store: store}
}

// TagsResponse lists all known tags, sorted ascending.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// ServeHTTP returns the sorted deduplicated union of all tags.
func (h *TagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TagsResponse{Tags: h.store.AllTags()})
}
