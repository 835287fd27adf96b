package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/httpserver/handlers"
)

// No timeout middleware here: SSE connections stay open until the client
// disconnects.
func init() { Register(registerEvents) }

func registerEvents(r chi.Router, d deps.Deps) {
	r.Get("/api/events", handlers.Events(d))
}
