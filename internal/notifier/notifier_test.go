package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipmark/clipmark/internal/logger"
)

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, logger.Nop())
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	events, cancel := n.Subscribe(ctx)
	defer cancel()

	want := Change{Key: "clipmark:bookmarks", Op: OpAdd, At: 123}

	// The subscription may not be live yet when the first publish goes
	// out; keep publishing until an event arrives.
	require.Eventually(t, func() bool {
		require.NoError(t, n.Publish(ctx, want))
		select {
		case got := <-events:
			assert.Equal(t, want, got)
			return true
		default:
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSubscribeClosesOnCancel(t *testing.T) {
	n := newTestNotifier(t)

	events, cancel := n.Subscribe(context.Background())
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription channel did not close")
	}
}
