package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/journal"
)

func TestTagsHandler(t *testing.T) {
	store := newStore(t)
	handler := NewTagsHandler(store)
	ctx := context.Background()

	a := store.SaveEntry(ctx, journal.Entry{Title: "a"})
	b := store.SaveEntry(ctx, journal.Entry{Title: "b"})
	store.AddTag(ctx, a.ID, "zeta")
	store.AddTag(ctx, a.ID, "alpha")
	store.AddTag(ctx, b.ID, "Alpha")

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp TagsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode tags: %v", err)
	}
	want := []string{"alpha", "zeta"}
	if len(resp.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", resp.Tags, want)
	}
	for i := range want {
		if resp.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, resp.Tags[i], want[i])
		}
	}
}

func TestTagsHandlerEmpty(t *testing.T) {
	handler := NewTagsHandler(newStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp TagsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode tags: %v", err)
	}
	if len(resp.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", resp.Tags)
	}
}
