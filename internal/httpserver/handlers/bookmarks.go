package handlers

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipmark/clipmark/internal/domain"
	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/logger"
)

type addBookmarkPayload struct {
	VideoID      string   `json:"videoId"`
	VideoTitle   string   `json:"videoTitle"`
	ChannelTitle string   `json:"channelTitle"`
	Timestamp    *float64 `json:"timestamp"`
	URL          string   `json:"url"`
}

type addBookmarkResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	WasUpdate bool   `json:"wasUpdate"`
	Message   string `json:"message"`
}

// AddBookmark handles the producer-facing save call. Fractional timestamps
// are floored at this boundary; the store receives whole seconds.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addBookmarkPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, d, err)
			return
		}

		req := domain.AddBookmarkRequest{
			VideoID:      payload.VideoID,
			VideoTitle:   payload.VideoTitle,
			ChannelTitle: payload.ChannelTitle,
			URL:          payload.URL,
		}
		if payload.Timestamp != nil {
			ts := int64(math.Floor(*payload.Timestamp))
			req.Timestamp = &ts
		}

		res, err := d.Store.AddOrUpdate(r.Context(), req)
		if err != nil {
			writeError(w, d, err)
			return
		}

		d.Logger.Info("bookmark saved",
			logger.String("id", res.ID),
			logger.Bool("was_update", res.WasUpdate))
		writeJSON(w, d, http.StatusOK, addBookmarkResponse{
			Success:   true,
			ID:        res.ID,
			WasUpdate: res.WasUpdate,
			Message:   res.Message,
		})
	}
}

type listBookmarksResponse struct {
	Success   bool              `json:"success"`
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

// ListBookmarks serves the collection from the renderer-side cache.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d, http.StatusOK, listBookmarksResponse{
			Success:   true,
			Bookmarks: d.Cache.Get(r.Context()),
		})
	}
}

type deleteBookmarkResponse struct {
	Success bool `json:"success"`
	Found   bool `json:"found"`
}

// DeleteBookmark removes one record. Deleting an absent id still succeeds.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		found, err := d.Store.Delete(r.Context(), id)
		if err != nil {
			writeError(w, d, err)
			return
		}
		if !found {
			d.Logger.Debug("delete for absent bookmark", logger.String("id", id))
		}
		writeJSON(w, d, http.StatusOK, deleteBookmarkResponse{Success: true, Found: found})
	}
}

type deleteManyPayload struct {
	IDs []string `json:"ids"`
}

type deleteManyResponse struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deletedCount"`
}

// DeleteBookmarks removes a batch of ids with one storage write.
func DeleteBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload deleteManyPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, d, err)
			return
		}
		deleted, err := d.Store.DeleteMany(r.Context(), payload.IDs)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, deleteManyResponse{Success: true, DeletedCount: deleted})
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

// ClearBookmarks empties the whole collection.
func ClearBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.ClearAll(r.Context()); err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Info("all bookmarks cleared")
		writeJSON(w, d, http.StatusOK, successResponse{Success: true})
	}
}

type updateNotesPayload struct {
	Notes string `json:"notes"`
}

// UpdateNotes replaces the notes of one record.
func UpdateNotes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateNotesPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, d, err)
			return
		}
		id := chi.URLParam(r, "id")
		if err := d.Store.UpdateNotes(r.Context(), id, payload.Notes); err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, successResponse{Success: true})
	}
}

type updateTagsPayload struct {
	Tags []string `json:"tags"`
}

// UpdateTags replaces the tags of one record.
func UpdateTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateTagsPayload
		if err := decodeBody(r, &payload); err != nil {
			writeError(w, d, err)
			return
		}
		id := chi.URLParam(r, "id")
		if err := d.Store.UpdateTags(r.Context(), id, payload.Tags); err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, successResponse{Success: true})
	}
}

type toggleFavoriteResponse struct {
	Success  bool `json:"success"`
	Favorite bool `json:"favorite"`
}

// ToggleFavorite flips the favorite flag and reports the new value.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		favorite, err := d.Store.ToggleFavorite(r.Context(), id)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, toggleFavoriteResponse{Success: true, Favorite: favorite})
	}
}
