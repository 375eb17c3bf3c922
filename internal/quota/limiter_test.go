package quota_test

import (
	"context"
	"testing"
	"time"

	"fridgepick.pl/api/internal/cache"
	"fridgepick.pl/api/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	limiter := quota.NewLimiter(cache.NewMemoryStoreWithClock(clock), 2, time.Hour).WithClock(clock)

	first, err := limiter.Allow(ctx, "ala")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, now.Add(time.Hour), first.ResetAt)

	now = now.Add(10 * time.Minute)
	second, err := limiter.Allow(ctx, "ala")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.Allow(ctx, "ala")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, first.ResetAt, third.ResetAt, "the window does not slide")

	other, err := limiter.Allow(ctx, "ola")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "accounts have separate windows")

	now = first.ResetAt
	reopened, err := limiter.Allow(ctx, "ala")
	require.NoError(t, err)
	assert.True(t, reopened.Allowed)
	assert.Equal(t, now.Add(time.Hour), reopened.ResetAt)
}

func TestPeekDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	limiter := quota.NewLimiter(cache.NewMemoryStore(), 1, time.Hour)

	peek, err := limiter.Peek(ctx, "ala")
	require.NoError(t, err)
	assert.True(t, peek.Allowed)
	assert.Equal(t, 1, peek.Remaining)

	allowed, err := limiter.Allow(ctx, "ala")
	require.NoError(t, err)
	assert.True(t, allowed.Allowed)

	peek, err = limiter.Peek(ctx, "ala")
	require.NoError(t, err)
	assert.False(t, peek.Allowed)
	assert.Equal(t, 0, peek.Remaining)
}
