package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dishtail/backend/internal/models"
)

// SearchCache stores ranked search results by request fingerprint.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]models.Recipe, bool, error)
	Set(ctx context.Context, key string, recipes []models.Recipe, ttl time.Duration) error
}

// RedisSearchCache keeps search results in Redis
type RedisSearchCache struct {
	redis  *redis.Client
	prefix string
}

func NewRedisSearchCache(client *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{redis: client, prefix: "search:recipes"}
}

func (c *RedisSearchCache) key(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]models.Recipe, bool, error) {
	data, err := c.redis.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached search: %w", err)
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached search: %w", err)
	}
	return recipes, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, recipes []models.Recipe, ttl time.Duration) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("failed to marshal search: %w", err)
	}
	if err := c.redis.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache search: %w", err)
	}
	return nil
}
