package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/journal"
)

func TestCategoriesHandler_CreatePaletteColor(t *testing.T) {
	handler := NewCategoriesHandler(newStore(t))

	body, _ := json.Marshal(CreateCategoryRequest{Name: "Health"})
	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create() status = %d, want %d", w.Code, http.StatusCreated)
	}
	var created journal.Category
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode category: %v", err)
	}
	if created.Color == "" {
		t.Error("Create() did not assign a palette color")
	}
}

func TestCategoriesHandler_CreateExplicitColor(t *testing.T) {
	handler := NewCategoriesHandler(newStore(t))

	body, _ := json.Marshal(CreateCategoryRequest{Name: "Work", Color: "crimson"})
	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	var created journal.Category
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode category: %v", err)
	}
	if created.Color != "crimson" {
		t.Errorf("Create() color = %q, want crimson", created.Color)
	}
}

func TestCategoriesHandler_Update(t *testing.T) {
	store := newStore(t)
	handler := NewCategoriesHandler(store)

	category := store.CreateCategory(context.Background(), "Old", "")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func() bool
	}{
		{
			name:       "rename only",
			body:       `{"name":"Renamed"}`,
			wantStatus: http.StatusNoContent,
			check:      func() bool { return store.Categories()[0].Name == "Renamed" },
		},
		{
			name:       "color only",
			body:       `{"color":"indigo"}`,
			wantStatus: http.StatusNoContent,
			check:      func() bool { return store.Categories()[0].Color == "indigo" },
		},
		{
			name:       "empty update rejected",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/categories/"+category.ID, bytes.NewReader([]byte(tt.body)))
			req = withURLParams(req, map[string]string{"id": category.ID})
			w := httptest.NewRecorder()
			handler.Update(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Update() status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.check != nil && !tt.check() {
				t.Errorf("Update() state check failed: %+v", store.Categories())
			}
		})
	}
}

func TestCategoriesHandler_DeleteDetaches(t *testing.T) {
	store := newStore(t)
	handler := NewCategoriesHandler(store)
	ctx := context.Background()

	category := store.CreateCategory(ctx, "Health", "")
	entry := store.SaveEntry(ctx, journal.Entry{Title: "run", CategoryID: category.ID})

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/"+category.ID, nil)
	req = withURLParams(req, map[string]string{"id": category.ID})
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Delete() status = %d, want %d", w.Code, http.StatusNoContent)
	}
	got, _ := store.Entry(entry.ID)
	if got.CategoryID != "" {
		t.Errorf("entry CategoryID = %q after category delete, want empty", got.CategoryID)
	}
}
