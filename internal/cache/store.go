// Package cache is the key-value store behind generated recommendations,
// refresh quotas and the category list.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fridgepick.pl/api/internal/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
)

// Store keeps opaque values until their ttl elapses. A ttl of zero keeps
// the value until it is deleted.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func GetJSON[T any](ctx context.Context, store Store, key string) (T, bool, error) {
	var value T
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return value, false, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return value, true, nil
}

func SetJSON[T any](ctx context.Context, store Store, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cached %s: %w", key, err)
	}
	return store.Set(ctx, key, raw, ttl)
}

// NewStore picks the backend named by cfg.CacheBackend.
func NewStore(cfg *config.Config, client *dynamodb.Client) (Store, error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		return NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})), nil
	case config.CacheMemory:
		return NewMemoryStore(), nil
	case config.CacheDynamoDB, "":
		return NewDynamoDBStore(cfg.TableName, client), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
}
