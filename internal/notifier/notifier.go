// Package notifier is the change-propagation contract between execution
// contexts sharing the persisted namespace. Every successful write to a
// watched key is announced on one pub/sub channel; subscribers re-query the
// store instead of diffing old/new values, so there is no buffering or
// replay here.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clipmark/clipmark/internal/logger"
)

// Channel is the pub/sub channel all change events go through.
const Channel = "clipmark:changes"

// Operations carried in change events.
const (
	OpAdd      = "add"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpClear    = "clear"
	OpImport   = "import"
	OpHeal     = "heal"
	OpSettings = "settings"
)

// Change describes one committed write: which key changed, what kind of
// mutation it was, and when (epoch ms). Consumers treat it as a hint to
// re-query, not as a delta.
type Change struct {
	Key string `json:"key"`
	Op  string `json:"op"`
	At  int64  `json:"at"`
}

type Notifier struct {
	client *redis.Client
	logger logger.Logger
}

func New(client *redis.Client, log logger.Logger) *Notifier {
	return &Notifier{client: client, logger: log}
}

// Publish announces a committed change. The write it describes has already
// been persisted, so callers treat failures as best-effort and log them.
func (n *Notifier) Publish(ctx context.Context, ch Change) error {
	payload, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	if err := n.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of change events and a cancel func. Events a
// slow consumer cannot keep up with are dropped; the next event makes the
// consumer re-query anyway. The channel closes when the subscription ends.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan Change, func()) {
	sub := n.client.Subscribe(ctx, Channel)
	out := make(chan Change, 16)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ch Change
			if err := json.Unmarshal([]byte(msg.Payload), &ch); err != nil {
				n.logger.Warn("malformed change event",
					logger.String("payload", msg.Payload),
					logger.Error(err))
				continue
			}
			select {
			case out <- ch:
			default:
				n.logger.Debug("dropping change event for slow subscriber",
					logger.String("key", ch.Key),
					logger.String("op", ch.Op))
			}
		}
	}()

	cancel := func() {
		if err := sub.Close(); err != nil {
			n.logger.Debug("failed to close subscription", logger.Error(err))
		}
	}
	return out, cancel
}
