package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clipmark/clipmark/internal/domain"
	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/logger"
)

// errorResponse is the failure envelope every endpoint resolves to. The
// error text is one of a small set of user-facing strings; raw internal
// messages never cross the API boundary.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, d deps.Deps, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrQuotaExceeded):
		status = http.StatusInsufficientStorage
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	d.Logger.Warn("request failed",
		logger.Int("status", status),
		logger.Error(err))
	writeJSON(w, d, status, errorResponse{Success: false, Error: domain.UserMessage(err)})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
