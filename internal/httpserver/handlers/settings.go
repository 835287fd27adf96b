package handlers

import (
	"net/http"

	"github.com/clipmark/clipmark/internal/domain"
	"github.com/clipmark/clipmark/internal/httpserver/deps"
)

type settingsResponse struct {
	Success  bool            `json:"success"`
	Settings domain.Settings `json:"settings"`
}

// GetSettings returns the shared preferences, defaults filled in.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.Store.GetSettings(r.Context())
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, settingsResponse{Success: true, Settings: settings})
	}
}

// PatchSettings shallow-merges a partial update and returns the result.
func PatchSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.SettingsPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, d, err)
			return
		}
		settings, err := d.Store.SetSettings(r.Context(), patch)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, settingsResponse{Success: true, Settings: settings})
	}
}
