package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ResultCache stores ranked results for a short time. A miss or any cache failure
// falls through to a fresh computation.
type ResultCache interface {
	Get(ctx context.Context, q Query) (*Result, bool)
	Set(ctx context.Context, q Query, result *Result)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache returns nil when client is nil or ttl is not positive, which disables caching
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) ResultCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &redisCache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(q Query) string {
	f := q.Flags
	return fmt.Sprintf("matches:v1:%d:%s:%t:%t:%t:%t:%t:%t:%d",
		q.MemberID, q.Strictness, f.Orientation, f.Age, f.Location, f.Religion, f.Education, f.Kids, q.Limit)
}

func (c *redisCache) Get(ctx context.Context, q Query) (*Result, bool) {
	data, err := c.client.Get(ctx, cacheKey(q)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("match cache read failed", zap.Error(err))
		}
		RecordCacheLookup(false)
		return nil, false
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("discarding unreadable cached matches", zap.Error(err))
		RecordCacheLookup(false)
		return nil, false
	}

	RecordCacheLookup(true)
	return &result, true
}

func (c *redisCache) Set(ctx context.Context, q Query, result *Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("failed to encode matches for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(q), data, c.ttl).Err(); err != nil {
		c.logger.Warn("match cache write failed", zap.Error(err))
	}
}
