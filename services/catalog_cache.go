package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CatalogCacheTTL    = 5 * time.Minute
	catalogCachePrefix = "catalog:products:"
)

// CatalogCache stores rendered product listings. Misses and failures look
// the same to callers.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type RedisCatalogCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCatalogCache(client *redis.Client, logger *zap.Logger) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, logger: logger}
}

func (c *RedisCatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func catalogCacheKey(category string) string {
	if category == "" {
		return catalogCachePrefix + "all"
	}
	return catalogCachePrefix + "category:" + category
}
