package connection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConnectRedisWithRetry(t *testing.T) {
	prev := RetryDelay
	RetryDelay = time.Millisecond
	t.Cleanup(func() { RetryDelay = prev })

	t.Run("gives up after max retries", func(t *testing.T) {
		_, err := ConnectRedisWithRetry(context.Background(), "127.0.0.1:1", 2, zap.NewNop())
		assert.ErrorContains(t, err, "after 2 retries")
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ConnectRedisWithRetry(ctx, "127.0.0.1:1", 5, zap.NewNop())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
