package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/clipmark/clipmark/internal/httpserver/deps"
)

type healthzResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	UptimeSec int64  `json:"uptime_sec"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d, http.StatusOK, healthzResponse{
			Status:    "ok",
			Version:   d.Version,
			UptimeSec: int64(time.Since(d.StartTime).Seconds()),
		})
	}
}

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports ready only when storage answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := d.RedisClient.Ping(ctx).Err(); err != nil {
			writeJSON(w, d, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		writeJSON(w, d, http.StatusOK, readyzResponse{Ready: true})
	}
}
