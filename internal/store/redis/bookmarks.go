package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clipmark/clipmark/internal/domain"
	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/notifier"
)

// AddResult reports the outcome of AddOrUpdate.
type AddResult struct {
	ID        string
	WasUpdate bool
	Message   string
}

// GetAll reads the full collection. Malformed records are dropped and the
// cleaned collection is persisted back (self-healing read). When every
// retry fails the store deliberately returns an empty collection instead of
// an error so consumers never block on a storage outage; the trade-off is
// that a persistent outage looks like "no bookmarks" to the UI.
func (s *Store) GetAll(ctx context.Context) []domain.Bookmark {
	var raw []byte
	err := s.withRetry(ctx, "get_all", func() error {
		data, err := s.client.Get(ctx, KeyBookmarks).Bytes()
		if errors.Is(err, goredis.Nil) {
			raw = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("read collection: %w", err)
		}
		raw = data
		return nil
	})
	if err != nil {
		storeLossyReads.Inc()
		s.logger.Error("all read attempts failed, returning empty collection",
			logger.Error(err))
		return []domain.Bookmark{}
	}
	if raw == nil {
		return []domain.Bookmark{}
	}

	bookmarks, dropped := decodeCollection(raw)
	if dropped > 0 {
		storeDroppedRecords.Add(float64(dropped))
		s.logger.Warn("dropped malformed bookmark records on read",
			logger.Int("dropped", dropped),
			logger.Int("kept", len(bookmarks)))
		if err := s.persist(ctx, bookmarks, notifier.OpHeal); err != nil {
			s.logger.Warn("failed to persist cleaned collection",
				logger.Error(err))
		}
	}
	return bookmarks
}

// decodeCollection parses the stored value, dropping anything that is not a
// well-formed record. A value that is not a JSON array counts as dropping
// everything it might have held.
func decodeCollection(raw []byte) (bookmarks []domain.Bookmark, dropped int) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []domain.Bookmark{}, 1
	}
	bookmarks = make([]domain.Bookmark, 0, len(elems))
	for _, elem := range elems {
		var b domain.Bookmark
		if err := json.Unmarshal(elem, &b); err != nil || !b.IsValid() {
			dropped++
			continue
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, dropped
}

// AddOrUpdate saves a timestamp. The record id depends on the
// multi-timestamps setting: one record per position, or one per video that
// gets replaced on every save. Updating an existing record refreshes the
// video fields and SavedAt but preserves notes, tags, favorite and the
// original CreatedAt.
func (s *Store) AddOrUpdate(ctx context.Context, req domain.AddBookmarkRequest) (AddResult, error) {
	if err := req.Validate(); err != nil {
		return AddResult{}, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return AddResult{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	id := domain.BookmarkID(req.VideoID, *req.Timestamp, settings.MultiTimestamps)
	bookmarks := s.GetAll(ctx)
	now := s.now().UnixMilli()

	wasUpdate := false
	for i := range bookmarks {
		if bookmarks[i].ID != id {
			continue
		}
		wasUpdate = true
		b := &bookmarks[i]
		b.VideoID = req.VideoID
		b.VideoTitle = req.Title()
		b.ChannelTitle = req.ChannelTitle
		b.Timestamp = *req.Timestamp
		b.URL = req.Link()
		b.SavedAt = now
		break
	}
	if !wasUpdate {
		bookmarks = append(bookmarks, domain.Bookmark{
			ID:           id,
			VideoID:      req.VideoID,
			VideoTitle:   req.Title(),
			ChannelTitle: req.ChannelTitle,
			Timestamp:    *req.Timestamp,
			URL:          req.Link(),
			CreatedAt:    now,
			SavedAt:      now,
			Notes:        "",
			Tags:         []string{},
			Favorite:     false,
		})
	}

	op := notifier.OpAdd
	if wasUpdate {
		op = notifier.OpUpdate
	}
	if err := s.persist(ctx, bookmarks, op); err != nil {
		return AddResult{}, err
	}

	msg := "Timestamp saved!"
	switch {
	case wasUpdate:
		msg = "Timestamp updated!"
	case settings.MultiTimestamps:
		msg = "Timestamp added!"
	}
	return AddResult{ID: id, WasUpdate: wasUpdate, Message: msg}, nil
}

// Delete removes one record. Deleting an absent id is not an error; the
// filtered collection is persisted either way so storage stays tidy.
func (s *Store) Delete(ctx context.Context, id string) (found bool, err error) {
	bookmarks := s.GetAll(ctx)
	kept := make([]domain.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if err := s.persist(ctx, kept, notifier.OpDelete); err != nil {
		return false, err
	}
	return found, nil
}

// DeleteMany removes a batch of ids with a single persist call. Absent ids
// are ignored, same as Delete.
func (s *Store) DeleteMany(ctx context.Context, ids []string) (deleted int, err error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	bookmarks := s.GetAll(ctx)
	kept := make([]domain.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if _, ok := drop[b.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, b)
	}
	if err := s.persist(ctx, kept, notifier.OpDelete); err != nil {
		return 0, err
	}
	return deleted, nil
}

// ClearAll replaces the collection with an empty one.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.persist(ctx, []domain.Bookmark{}, notifier.OpClear)
}

// UpdateNotes replaces the notes of one record.
func (s *Store) UpdateNotes(ctx context.Context, id, notes string) error {
	return s.updateOne(ctx, id, func(b *domain.Bookmark) {
		b.Notes = notes
	})
}

// UpdateTags replaces the tags of one record. Tags are normalized to
// lowercase, deduplicated, order preserved.
func (s *Store) UpdateTags(ctx context.Context, id string, tags []string) error {
	normalized := domain.NormalizeTags(tags)
	return s.updateOne(ctx, id, func(b *domain.Bookmark) {
		b.Tags = normalized
	})
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (favorite bool, err error) {
	err = s.updateOne(ctx, id, func(b *domain.Bookmark) {
		b.Favorite = !b.Favorite
		favorite = b.Favorite
	})
	if err != nil {
		return false, err
	}
	return favorite, nil
}

// updateOne mutates a single record in place and persists the collection.
// Fails with ErrNotFound when the id is absent.
func (s *Store) updateOne(ctx context.Context, id string, mutate func(*domain.Bookmark)) error {
	bookmarks := s.GetAll(ctx)
	idx := -1
	for i := range bookmarks {
		if bookmarks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	mutate(&bookmarks[idx])
	bookmarks[idx].SavedAt = s.now().UnixMilli()
	return s.persist(ctx, bookmarks, notifier.OpUpdate)
}

// Import merges incoming records into the collection. Records whose id
// already exists are skipped, never overwritten; malformed records are
// skipped too. One persist call for the whole batch.
func (s *Store) Import(ctx context.Context, incoming []domain.Bookmark) (added, skipped int, err error) {
	bookmarks := s.GetAll(ctx)
	existing := make(map[string]struct{}, len(bookmarks))
	for _, b := range bookmarks {
		existing[b.ID] = struct{}{}
	}

	for _, b := range incoming {
		if !b.IsValid() {
			skipped++
			s.logger.Warn("skipping malformed record on import",
				logger.String("id", b.ID))
			continue
		}
		if _, ok := existing[b.ID]; ok {
			skipped++
			continue
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		existing[b.ID] = struct{}{}
		bookmarks = append(bookmarks, b)
		added++
	}

	if added == 0 {
		return 0, skipped, nil
	}
	if err := s.persist(ctx, bookmarks, notifier.OpImport); err != nil {
		return 0, 0, err
	}
	return added, skipped, nil
}

// persist writes the collection under quota policy and verifies the write.
//
// Projected size is the serialized collection alone: the only other keys in
// the namespace are a handful of settings bytes, deliberately excluded (one
// consistent choice). Over the threshold the collection is trimmed to the
// TrimLimit most-recently-saved records; if that is not enough the write
// fails with ErrQuotaExceeded rather than silently dropping data the user
// didn't ask to drop. The write plus read-back verification is retried as a
// unit with the shared backoff.
func (s *Store) persist(ctx context.Context, bookmarks []domain.Bookmark, op string) error {
	data, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	limit := int64(float64(s.opts.QuotaBytes) * s.opts.QuotaThreshold)
	if int64(len(data)) > limit && len(bookmarks) > s.opts.TrimLimit {
		trimmed := len(bookmarks) - s.opts.TrimLimit
		bookmarks = trimToRecent(bookmarks, s.opts.TrimLimit)
		data, err = json.Marshal(bookmarks)
		if err != nil {
			return fmt.Errorf("encode trimmed collection: %w", err)
		}
		storeTrimmedRecords.Add(float64(trimmed))
		s.logger.Warn("trimmed collection to fit quota",
			logger.Int("trimmed", trimmed),
			logger.Int("kept", len(bookmarks)))
	}
	if int64(len(data)) > limit {
		storeQuotaFailures.Inc()
		s.logger.Error("collection over quota threshold, refusing write",
			logger.Int("bytes", len(data)),
			logger.Int64("limit", limit))
		return domain.ErrQuotaExceeded
	}

	err = s.withRetry(ctx, op, func() error {
		if err := s.client.Set(ctx, KeyBookmarks, data, 0).Err(); err != nil {
			return fmt.Errorf("write collection: %w", err)
		}
		stored, err := s.client.Get(ctx, KeyBookmarks).Bytes()
		if err != nil {
			return fmt.Errorf("verification read: %w", err)
		}
		var check []json.RawMessage
		if err := json.Unmarshal(stored, &check); err != nil || len(check) != len(bookmarks) {
			return fmt.Errorf("%w: wrote %d records, read back %d",
				domain.ErrVerificationFailed, len(bookmarks), len(check))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrVerificationFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	storeMutations.WithLabelValues(op).Inc()
	s.notify(ctx, KeyBookmarks, op)
	return nil
}

// trimToRecent keeps the n most-recently-saved records, ordered by SavedAt
// descending with CreatedAt as tiebreaker.
func trimToRecent(bookmarks []domain.Bookmark, n int) []domain.Bookmark {
	sorted := make([]domain.Bookmark, len(bookmarks))
	copy(sorted, bookmarks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SavedAt != sorted[j].SavedAt {
			return sorted[i].SavedAt > sorted[j].SavedAt
		}
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
