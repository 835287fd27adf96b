package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/logger"
)

// Events streams change notifications to renderers over SSE. Consumers are
// expected to re-query the list endpoint on every event rather than diff.
func Events(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		events, cancel := d.Notifier.Subscribe(r.Context())
		defer cancel()

		d.Logger.Debug("sse subscriber connected",
			logger.String("remote_ip", r.RemoteAddr))

		heartbeat := time.NewTicker(25 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
				flusher.Flush()
			case <-heartbeat.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			}
		}
	}
}
