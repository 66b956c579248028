package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/models"
)

// SuggestionCache caches ranked suggestion lists keyed by normalized query
// and effective limit. A cache failure is never surfaced to the caller; the
// suggestion path falls through to the catalog instead.
type SuggestionCache interface {
	Get(ctx context.Context, key string) ([]*models.Suggestion, bool)
	Set(ctx context.Context, key string, suggestions []*models.Suggestion)
}

type redisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSuggestionCache creates a SuggestionCache backed by Redis. Entries
// expire after ttl.
func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) SuggestionCache {
	return &redisSuggestionCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("suggestion-cache"),
	}
}

var _ SuggestionCache = (*redisSuggestionCache)(nil)

func (c *redisSuggestionCache) Get(ctx context.Context, key string) ([]*models.Suggestion, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Suggestion cache read failed",
				zap.String("key", key),
				zap.Error(err))
		}
		return nil, false
	}

	var suggestions []*models.Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		c.logger.Warn("Discarding malformed suggestion cache entry",
			zap.String("key", key),
			zap.Error(err))
		return nil, false
	}

	return suggestions, true
}

func (c *redisSuggestionCache) Set(ctx context.Context, key string, suggestions []*models.Suggestion) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		c.logger.Warn("Failed to encode suggestions for cache",
			zap.String("key", key),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Suggestion cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// suggestionCacheKey builds the cache key for a normalized query and
// effective limit. Both inputs are part of the key because the same query
// truncates differently under different limits.
func suggestionCacheKey(query string, limit int) string {
	return fmt.Sprintf("suggest:%s:%d", query, limit)
}
