package redis

import (
	"context"
	"time"

	"owqueue/pkg/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the go-redis client with simpler Get/Set helpers.
type RedisClient struct {
	*redis.Client
}

// NewClient creates a redis client from the configuration.
// Returns nil when no redis host is configured, since the rank cache is
// optional.
func NewClient(cfg config.RedisConfiguration) *RedisClient {
	if cfg.Host == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     100,
		MinIdleConns: 10,
		PoolTimeout:  30 * time.Second,
	})

	return &RedisClient{
		Client: client,
	}
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to return the Result directly.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Wrapper to already return the .Err()
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}
