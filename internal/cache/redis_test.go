package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridgepick.pl/api/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redisEntry struct {
	value     []byte
	expiresAt time.Time
}

// fakeRedis answers the commands RedisStore issues from a map. Any other
// command panics on the nil embedded client.
type fakeRedis struct {
	redis.UniversalClient
	now     func() time.Time
	entries map[string]redisEntry
	ttls    map[string]time.Duration
	err     error
}

func newFakeRedis(now func() time.Time) *fakeRedis {
	return &fakeRedis{
		now:     now,
		entries: make(map[string]redisEntry),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	entry, ok := f.entries[key]
	if !ok || (!entry.expiresAt.IsZero() && !f.now().Before(entry.expiresAt)) {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(entry.value), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	entry := redisEntry{value: append([]byte(nil), value.([]byte)...)}
	if expiration > 0 {
		entry.expiresAt = f.now().Add(expiration)
	}
	f.entries[key] = entry
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var deleted int64
	for _, key := range keys {
		if _, ok := f.entries[key]; ok {
			delete(f.entries, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

func TestRedisStore(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	client := newFakeRedis(func() time.Time { return now })
	exerciseStore(t, cache.NewRedisStore(client), func(d time.Duration) { now = now.Add(d) })

	assert.Equal(t, time.Minute, client.ttls["fridgepick:entry"], "keys are prefixed and the ttl is forwarded")
	assert.Equal(t, time.Duration(0), client.ttls["fridgepick:forever"])
}

func TestRedisStoreErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis(time.Now)
	client.err = errors.New("connection refused")
	store := cache.NewRedisStore(client)

	_, ok, err := store.Get(ctx, "entry")
	assert.False(t, ok)
	require.ErrorIs(t, err, client.err)
	assert.ErrorContains(t, err, "reading cache entry")

	assert.ErrorIs(t, store.Set(ctx, "entry", []byte("x"), time.Minute), client.err)
	assert.ErrorIs(t, store.Delete(ctx, "entry"), client.err)
}
