// Package config loads the runtime configuration shared by every entry point
// from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	CacheDynamoDB = "dynamodb"
	CacheRedis    = "redis"
	CacheMemory   = "memory"
)

type Config struct {
	TableName        string `mapstructure:"table_name"`
	DynamoDBEndpoint string `mapstructure:"dynamodb_endpoint"`
	TopicArn         string `mapstructure:"topic_arn"`
	TokenSecret      string `mapstructure:"token_secret"`

	AuthURL    string `mapstructure:"auth_url"`
	AuthAPIKey string `mapstructure:"auth_api_key"`

	CacheBackend string `mapstructure:"cache_backend" validate:"oneof=dynamodb redis memory"`
	RedisAddr    string `mapstructure:"redis_addr" validate:"required_if=CacheBackend redis"`

	GeminiAPIKey        string `mapstructure:"gemini_api_key"`
	GeminiModel         string `mapstructure:"gemini_model"`
	AIRequestsPerMinute int    `mapstructure:"ai_requests_per_minute" validate:"gte=1"`

	RecommendationLimit int           `mapstructure:"recommendation_limit" validate:"gte=1,lte=50"`
	RecommendationTTL   time.Duration `mapstructure:"recommendation_ttl" validate:"gt=0"`
	RefreshLimit        int           `mapstructure:"refresh_limit" validate:"gte=1"`
	RefreshWindow       time.Duration `mapstructure:"refresh_window" validate:"gt=0"`
	ExpiringWithin      time.Duration `mapstructure:"expiring_within" validate:"gt=0"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"`

	APIURL   string `mapstructure:"api_url"`
	APIToken string `mapstructure:"api_token"`
	Port     int    `mapstructure:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("table_name", "FridgePick")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("topic_arn", "")
	v.SetDefault("token_secret", "")
	v.SetDefault("auth_url", "")
	v.SetDefault("auth_api_key", "")
	v.SetDefault("cache_backend", CacheDynamoDB)
	v.SetDefault("redis_addr", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("ai_requests_per_minute", 10)
	v.SetDefault("recommendation_limit", 10)
	v.SetDefault("recommendation_ttl", "6h")
	v.SetDefault("refresh_limit", 5)
	v.SetDefault("refresh_window", "1h")
	v.SetDefault("expiring_within", "72h")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("api_token", "")
	v.SetDefault("port", 8080)
}

// Load reads every setting from upper case environment variables
// (TABLE_NAME, CACHE_BACKEND, ...) on top of the defaults.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// AIEnabled reports whether recommendations are ranked by the hosted model.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}
