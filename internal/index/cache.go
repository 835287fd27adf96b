// Package index holds the renderer-side read-through cache. It replaces
// the ambient "allBookmarks" globals renderers used to keep: an explicit
// object with Invalidate/Refresh, populated from the store and invalidated
// by change events.
package index

import (
	"context"
	"sync"
	"time"

	"github.com/clipmark/clipmark/internal/domain"
)

// Source is the slice of the store the cache needs.
type Source interface {
	GetAll(ctx context.Context) []domain.Bookmark
}

// BookmarkCache is a read-through cache over the bookmark collection.
// Safe for concurrent use.
type BookmarkCache struct {
	source Source

	mu          sync.RWMutex
	bookmarks   []domain.Bookmark
	fresh       bool
	lastRefresh time.Time
}

func NewBookmarkCache(source Source) *BookmarkCache {
	return &BookmarkCache{source: source}
}

// Get returns the cached collection, refreshing from the source first when
// the cache has been invalidated. Callers get a copy they may reorder or
// filter freely.
func (c *BookmarkCache) Get(ctx context.Context) []domain.Bookmark {
	c.mu.RLock()
	if c.fresh {
		out := make([]domain.Bookmark, len(c.bookmarks))
		copy(out, c.bookmarks)
		c.mu.RUnlock()
		return out
	}
	c.mu.RUnlock()

	c.Refresh(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Bookmark, len(c.bookmarks))
	copy(out, c.bookmarks)
	return out
}

// Refresh re-queries the source and replaces the cached collection.
func (c *BookmarkCache) Refresh(ctx context.Context) {
	bookmarks := c.source.GetAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bookmarks = bookmarks
	c.fresh = true
	c.lastRefresh = time.Now()
}

// Invalidate marks the cache stale; the next Get re-queries the source.
func (c *BookmarkCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fresh = false
}

// Count returns the number of cached records.
func (c *BookmarkCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bookmarks)
}

// LastRefresh returns when the cache last pulled from the source.
func (c *BookmarkCache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}
