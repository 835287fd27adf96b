// Package redis implements the bookmark store: the sole reader/writer of
// the persisted collection. The underlying layout has no per-record update,
// so every mutation is a full-collection read-modify-write followed by a
// read-back verification, with quota enforcement and bounded retry.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/notifier"
)

const (
	// DefaultQuotaBytes mirrors the 100 KiB budget of the sync-storage
	// area the collection originally lived in.
	DefaultQuotaBytes = 100 * 1024
	// DefaultQuotaThreshold is the fraction of the quota at which the
	// store starts trimming or refusing writes.
	DefaultQuotaThreshold = 0.9
	// DefaultTrimLimit is how many most-recently-saved records survive a
	// quota trim.
	DefaultTrimLimit = 500

	DefaultRetryMax     = 3
	DefaultRetryBase    = 1 * time.Second
	DefaultRetryMaxWait = 5 * time.Second
)

// Options tune quota and retry policy. Zero values resolve to defaults.
type Options struct {
	QuotaBytes     int64
	QuotaThreshold float64
	TrimLimit      int

	RetryMax     int
	RetryBase    time.Duration
	RetryMaxWait time.Duration

	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

func (o Options) withDefaults() Options {
	if o.QuotaBytes <= 0 {
		o.QuotaBytes = DefaultQuotaBytes
	}
	if o.QuotaThreshold <= 0 || o.QuotaThreshold > 1 {
		o.QuotaThreshold = DefaultQuotaThreshold
	}
	if o.TrimLimit <= 0 {
		o.TrimLimit = DefaultTrimLimit
	}
	if o.RetryMax <= 0 {
		o.RetryMax = DefaultRetryMax
	}
	if o.RetryBase <= 0 {
		o.RetryBase = DefaultRetryBase
	}
	if o.RetryMaxWait <= 0 {
		o.RetryMaxWait = DefaultRetryMaxWait
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Store owns the bookmark collection and the shared settings.
type Store struct {
	client   *goredis.Client
	notifier *notifier.Notifier
	logger   logger.Logger
	opts     Options
}

// NewStore creates a store. notifier may not be nil: every committed write
// is announced so other contexts converge on the same state.
func NewStore(client *goredis.Client, n *notifier.Notifier, log logger.Logger, opts Options) *Store {
	return &Store{
		client:   client,
		notifier: n,
		logger:   log,
		opts:     opts.withDefaults(),
	}
}

func (s *Store) now() time.Time {
	return s.opts.Clock()
}

// withRetry runs fn up to RetryMax times with exponential backoff
// (RetryBase doubling, capped at RetryMaxWait). The last error is returned
// when the budget runs out; context cancellation stops the loop early.
func (s *Store) withRetry(ctx context.Context, op string, fn func() error) error {
	wait := s.opts.RetryBase
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= s.opts.RetryMax {
			return err
		}
		storeRetries.Inc()
		s.logger.Warn("storage attempt failed, retrying",
			logger.String("op", op),
			logger.Int("attempt", attempt),
			logger.Duration("backoff", wait),
			logger.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
		if wait > s.opts.RetryMaxWait {
			wait = s.opts.RetryMaxWait
		}
	}
}

// notify announces a committed write. Best effort: the data is already
// persisted, so a publish failure only delays convergence until the next
// periodic refresh.
func (s *Store) notify(ctx context.Context, key, op string) {
	ch := notifier.Change{Key: key, Op: op, At: s.now().UnixMilli()}
	if err := s.notifier.Publish(ctx, ch); err != nil {
		s.logger.Warn("failed to publish change event",
			logger.String("key", key),
			logger.String("op", op),
			logger.Error(err))
	}
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
