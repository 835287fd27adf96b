package scheduler

import (
	"context"
	"time"

	"github.com/clipmark/clipmark/internal/index"
	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/notifier"
)

// Refresher keeps the renderer-side cache eventually consistent with
// storage: it subscribes to the change notifier and re-queries on every
// event, plus a periodic full refresh as a safety net for missed events.
type Refresher struct {
	notifier *notifier.Notifier
	cache    *index.BookmarkCache
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

func NewRefresher(
	n *notifier.Notifier,
	cache *index.BookmarkCache,
	log logger.Logger,
	interval time.Duration,
) *Refresher {
	return &Refresher{
		notifier: n,
		cache:    cache,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start populates the cache and begins listening for change events.
func (rf *Refresher) Start(ctx context.Context) error {
	rf.cache.Refresh(ctx)

	events, cancel := rf.notifier.Subscribe(ctx)

	ticker := time.NewTicker(rf.interval)
	go func() {
		defer ticker.Stop()
		defer cancel()
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					rf.logger.Warn("change event stream closed")
					return
				}
				rf.logger.Debug("change event received, refreshing cache",
					logger.String("key", ev.Key),
					logger.String("op", ev.Op))
				rf.cache.Invalidate()
				rf.cache.Refresh(ctx)
			case <-ticker.C:
				rf.cache.Refresh(ctx)
			case <-rf.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher.
func (rf *Refresher) Stop() {
	close(rf.stopCh)
}
