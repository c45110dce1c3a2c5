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

func TestFoldersHandler_CreateAndList(t *testing.T) {
	store := newStore(t)
	handler := NewFoldersHandler(store)

	body, _ := json.Marshal(FolderRequest{Name: "Trips"})
	req := httptest.NewRequest(http.MethodPost, "/api/folders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create() status = %d, want %d", w.Code, http.StatusCreated)
	}
	var created journal.Folder
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode folder: %v", err)
	}
	if created.ID == "" || created.Name != "Trips" {
		t.Errorf("Create() = %+v, want folder named Trips with id", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/folders", nil)
	w = httptest.NewRecorder()
	handler.List(w, req)

	var listed []journal.Folder
	if err := json.NewDecoder(w.Body).Decode(&listed); err != nil {
		t.Fatalf("decode folders: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("List() = %v, want the created folder", listed)
	}
}

func TestFoldersHandler_CreateValidation(t *testing.T) {
	handler := NewFoldersHandler(newStore(t))

	tests := []struct {
		name string
		body string
	}{
		{name: "empty name", body: `{"name":""}`},
		{name: "invalid json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/folders", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			handler.Create(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Create() status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestFoldersHandler_RenameAndDelete(t *testing.T) {
	store := newStore(t)
	handler := NewFoldersHandler(store)
	ctx := context.Background()

	folder := store.CreateFolder(ctx, "Old")
	entry := store.SaveEntry(ctx, journal.Entry{Title: "filed", FolderID: folder.ID})

	body, _ := json.Marshal(FolderRequest{Name: "New"})
	req := httptest.NewRequest(http.MethodPatch, "/api/folders/"+folder.ID, bytes.NewReader(body))
	req = withURLParams(req, map[string]string{"id": folder.ID})
	w := httptest.NewRecorder()
	handler.Rename(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Rename() status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if folders := store.Folders(); folders[0].Name != "New" {
		t.Errorf("folder name = %q, want New", folders[0].Name)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/folders/"+folder.ID, nil)
	req = withURLParams(req, map[string]string{"id": folder.ID})
	w = httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Delete() status = %d, want %d", w.Code, http.StatusNoContent)
	}
	got, _ := store.Entry(entry.ID)
	if got.FolderID != "" {
		t.Errorf("entry FolderID = %q after folder delete, want empty", got.FolderID)
	}
}
