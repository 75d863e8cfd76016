package mem

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripmate/internal/models/domain_models"
)

// RedisSearchCache shares search results between instances. Redis errors are
// logged and treated as cache misses.
type RedisSearchCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	log        *zap.Logger
}

func NewRedisSearchCache(client *redis.Client, defaultTTL time.Duration, log *zap.Logger) *RedisSearchCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisSearchCache{client: client, defaultTTL: defaultTTL, log: log}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func (c *RedisSearchCache) Get(ctx context.Context, provider, query string) ([]domain_models.RawPlace, bool) {
	b, err := c.client.Get(ctx, cacheKey(provider, query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("redis search cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var places []domain_models.RawPlace
	if err := json.Unmarshal(b, &places); err != nil {
		c.log.Warn("redis search cache entry is corrupt", zap.String("provider", provider), zap.Error(err))
		return nil, false
	}
	return places, true
}

func (c *RedisSearchCache) Set(ctx context.Context, provider, query string, places []domain_models.RawPlace, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	b, err := json.Marshal(places)
	if err != nil {
		c.log.Warn("redis search cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(provider, query), b, ttl).Err(); err != nil {
		c.log.Warn("redis search cache set failed", zap.Error(err))
	}
}
