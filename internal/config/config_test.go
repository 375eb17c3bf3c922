package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, CacheDynamoDB, cfg.CacheBackend)
	assert.Equal(t, 6*time.Hour, cfg.RecommendationTTL)
	assert.Equal(t, time.Hour, cfg.RefreshWindow)
	assert.Equal(t, 72*time.Hour, cfg.ExpiringWithin)
	assert.Equal(t, 5, cfg.RefreshLimit)
	assert.False(t, cfg.AIEnabled())
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("TABLE_NAME", "Pantry")
	t.Setenv("CACHE_BACKEND", CacheRedis)
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REFRESH_WINDOW", "15m")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "Pantry", cfg.TableName)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Minute, cfg.RefreshWindow)
	assert.True(t, cfg.AIEnabled())
}

func TestLoadInvalid(t *testing.T) {
	t.Run("UnknownBackend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")
		_, err := load(viper.New())
		assert.Error(t, err)
	})

	t.Run("RedisWithoutAddress", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", CacheRedis)
		_, err := load(viper.New())
		assert.Error(t, err)
	})
}
