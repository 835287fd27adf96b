package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks, middleware.Timeout(10*time.Second)) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.AddBookmark(d))
		r.Delete("/", handlers.ClearBookmarks(d))
		r.Post("/delete", handlers.DeleteBookmarks(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
		r.Patch("/{id}/notes", handlers.UpdateNotes(d))
		r.Patch("/{id}/tags", handlers.UpdateTags(d))
		r.Post("/{id}/favorite", handlers.ToggleFavorite(d))
	})
}
