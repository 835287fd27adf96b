package handlers

import (
	"net/http"

	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/transfer"
)

// Export streams the collection as a downloadable export file.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := transfer.Export(r.Context(), d.Store)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="clipmark-bookmarks.json"`)
		if err := f.WriteTo(w); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

type importResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
	Skipped  int  `json:"skipped"`
}

// Import merges an uploaded export file into the collection. Existing ids
// are skipped, never overwritten.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := transfer.Read(r.Body)
		if err != nil {
			writeError(w, d, err)
			return
		}
		added, skipped, err := transfer.Import(r.Context(), d.Store, f)
		if err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Info("import completed",
			logger.Int("imported", added),
			logger.Int("skipped", skipped))
		writeJSON(w, d, http.StatusOK, importResponse{Success: true, Imported: added, Skipped: skipped})
	}
}
