package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/httpserver/handlers"
)

func init() { Register(registerTransfer, middleware.Timeout(30*time.Second)) }

func registerTransfer(r chi.Router, d deps.Deps) {
	r.Get("/api/export", handlers.Export(d))
	r.Post("/api/import", handlers.Import(d))
}
