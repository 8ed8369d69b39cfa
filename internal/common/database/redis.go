// internal/common/database/redis.go
// Redis client backing the match result cache

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/config"
)

// ErrRedisDisabled means no Redis URL is configured
var ErrRedisDisabled = errors.New("redis not configured")

// NewRedisClient connects to cfg.URL. The client is only returned once it answers a ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, ErrRedisDisabled
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
