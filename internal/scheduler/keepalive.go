package scheduler

import (
	"context"
	"time"

	"github.com/clipmark/clipmark/internal/logger"
)

// DefaultKeepAliveInterval matches the 30s keep-alive cadence the original
// background worker used to stay resident.
const DefaultKeepAliveInterval = 30 * time.Second

// Pinger is the slice of the store the keep-alive needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KeepAlive periodically pings storage so an outage shows up in the logs
// before a user-facing mutation trips over it.
type KeepAlive struct {
	pinger   Pinger
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

func NewKeepAlive(pinger Pinger, log logger.Logger, interval time.Duration) *KeepAlive {
	if interval <= 0 {
		interval = DefaultKeepAliveInterval
	}
	return &KeepAlive{
		pinger:   pinger,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic liveness check.
func (ka *KeepAlive) Start(ctx context.Context) error {
	ticker := time.NewTicker(ka.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				err := ka.pinger.Ping(pingCtx)
				cancel()
				if err != nil {
					ka.logger.Warn("storage keep-alive check failed",
						logger.Error(err))
				} else {
					ka.logger.Debug("storage keep-alive check ok")
				}
			case <-ka.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop stops the keep-alive loop.
func (ka *KeepAlive) Stop() {
	close(ka.stopCh)
}
