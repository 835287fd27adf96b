package index

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clipmark/clipmark/internal/domain"
)

type stubSource struct {
	calls     atomic.Int64
	bookmarks []domain.Bookmark
}

func (s *stubSource) GetAll(ctx context.Context) []domain.Bookmark {
	s.calls.Add(1)
	out := make([]domain.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

func TestGetRefreshesOnlyWhenStale(t *testing.T) {
	src := &stubSource{bookmarks: []domain.Bookmark{{ID: "v1:10"}}}
	c := NewBookmarkCache(src)
	ctx := context.Background()

	got := c.Get(ctx)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), src.calls.Load())

	// Fresh cache serves without hitting the source again.
	c.Get(ctx)
	c.Get(ctx)
	assert.Equal(t, int64(1), src.calls.Load())

	src.bookmarks = append(src.bookmarks, domain.Bookmark{ID: "v1:20"})
	c.Invalidate()

	got = c.Get(ctx)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), src.calls.Load())
}

func TestGetReturnsACopy(t *testing.T) {
	src := &stubSource{bookmarks: []domain.Bookmark{{ID: "v1:10", Notes: "original"}}}
	c := NewBookmarkCache(src)
	ctx := context.Background()

	got := c.Get(ctx)
	got[0].Notes = "mutated by caller"

	again := c.Get(ctx)
	assert.Equal(t, "original", again[0].Notes)
}

func TestCountAndLastRefresh(t *testing.T) {
	src := &stubSource{bookmarks: []domain.Bookmark{{ID: "a"}, {ID: "b"}}}
	c := NewBookmarkCache(src)

	assert.Equal(t, 0, c.Count())
	assert.True(t, c.LastRefresh().IsZero())

	c.Refresh(context.Background())
	assert.Equal(t, 2, c.Count())
	assert.False(t, c.LastRefresh().IsZero())
}
