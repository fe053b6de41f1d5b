package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_TakeToken(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	tb := NewTokenBucket(2, 1)
	tb.now = func() time.Time { return clock }
	tb.lastRefill = clock

	assert.True(t, tb.TakeToken())
	assert.True(t, tb.TakeToken())
	assert.False(t, tb.TakeToken(), "bucket should be empty")

	clock = clock.Add(1 * time.Second)
	assert.True(t, tb.TakeToken(), "one token refilled after a second")
	assert.False(t, tb.TakeToken())

	clock = clock.Add(10 * time.Second)
	assert.True(t, tb.TakeToken())
	assert.True(t, tb.TakeToken())
	assert.False(t, tb.TakeToken(), "refill is capped at capacity")
}

func TestNewTokenBucket_ClampsValues(t *testing.T) {
	tb := NewTokenBucket(0, -3)
	assert.Equal(t, int64(1), tb.capacity)
	assert.Equal(t, int64(1), tb.refillRate)
}

func TestTokenBucket_WaitHonoursContext(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	require.NoError(t, tb.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
