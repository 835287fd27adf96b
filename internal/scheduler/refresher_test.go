package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipmark/clipmark/internal/domain"
	"github.com/clipmark/clipmark/internal/index"
	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/notifier"
)

type countingSource struct {
	calls     atomic.Int64
	bookmarks atomic.Pointer[[]domain.Bookmark]
}

func (s *countingSource) GetAll(ctx context.Context) []domain.Bookmark {
	s.calls.Add(1)
	if p := s.bookmarks.Load(); p != nil {
		return *p
	}
	return []domain.Bookmark{}
}

func (s *countingSource) set(bookmarks []domain.Bookmark) {
	s.bookmarks.Store(&bookmarks)
}

func TestRefresherReactsToChangeEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	n := notifier.New(client, logger.Nop())
	src := &countingSource{}
	cache := index.NewBookmarkCache(src)

	rf := NewRefresher(n, cache, logger.Nop(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, rf.Start(ctx))
	defer rf.Stop()

	// Start does an initial refresh of the empty source.
	assert.Equal(t, 0, cache.Count())

	src.set([]domain.Bookmark{{ID: "v1:10"}})
	change := notifier.Change{Key: "clipmark:bookmarks", Op: notifier.OpAdd, At: 1}

	require.Eventually(t, func() bool {
		require.NoError(t, n.Publish(ctx, change))
		return cache.Count() == 1
	}, 3*time.Second, 25*time.Millisecond)
}

func TestRefresherPeriodicRefresh(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	n := notifier.New(client, logger.Nop())
	src := &countingSource{}
	cache := index.NewBookmarkCache(src)

	rf := NewRefresher(n, cache, logger.Nop(), 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, rf.Start(ctx))
	defer rf.Stop()

	src.set([]domain.Bookmark{{ID: "a"}, {ID: "b"}})

	// No events published; only the ticker can pick this up.
	require.Eventually(t, func() bool {
		return cache.Count() == 2
	}, 3*time.Second, 10*time.Millisecond)
}

type countingPinger struct {
	calls atomic.Int64
}

func (p *countingPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	return nil
}

func TestKeepAlivePingsPeriodically(t *testing.T) {
	p := &countingPinger{}
	ka := NewKeepAlive(p, logger.Nop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, ka.Start(ctx))

	require.Eventually(t, func() bool {
		return p.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	ka.Stop()
	settled := p.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, p.calls.Load(), settled+1, "pings should stop after Stop")
}
