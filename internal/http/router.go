package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/handlers"
	"inkwell/internal/journal"
	"inkwell/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Store *journal.Store
	KV    storage.KVStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	entries := handlers.NewEntriesHandler(deps.Store)
	folders := handlers.NewFoldersHandler(deps.Store)
	categories := handlers.NewCategoriesHandler(deps.Store)
	tags := handlers.NewTagsHandler(deps.Store)
	preview := handlers.NewPreviewHandler(deps.Store)
	health := handlers.NewHealthHandler(deps.KV)

	r.Route("/api", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", entries.List)
			r.Post("/", entries.Save)
			r.Get("/{id}", entries.Get)
			r.Delete("/{id}", entries.Delete)
			r.Post("/{id}/move", entries.Move)
			r.Post("/{id}/category", entries.SetCategory)
			r.Put("/{id}/tags/{tag}", entries.AddTag)
			r.Delete("/{id}/tags/{tag}", entries.RemoveTag)
			r.Method(http.MethodGet, "/{id}/preview", preview)
		})

		r.Route("/folders", func(r chi.Router) {
			r.Get("/", folders.List)
			r.Post("/", folders.Create)
			r.Patch("/{id}", folders.Rename)
			r.Delete("/{id}", folders.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Patch("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})

		r.Method(http.MethodGet, "/tags", tags)
		r.Method(http.MethodGet, "/health", health)
	})

	return r
}
