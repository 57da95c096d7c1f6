package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/frameshop/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatchSize = 100

// RedisSupplyCache implements SupplyCache using Redis, for deployments
// with more than one API instance
type RedisSupplyCache struct {
	client     *redis.Client
	ownsClient bool
	logger     *zap.Logger
}

// NewRedisSupplyCache creates a Redis-backed supply cache and verifies
// the connection
func NewRedisSupplyCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisSupplyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSupplyCache{client: client, ownsClient: true, logger: logger}, nil
}

// NewRedisSupplyCacheWithClient creates a cache with an existing Redis
// client. The caller keeps ownership of the client.
func NewRedisSupplyCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisSupplyCache {
	return &RedisSupplyCache{client: client, ownsClient: false, logger: logger}
}

// Get retrieves a supply from cache, returning (nil, nil) on a miss
func (c *RedisSupplyCache) Get(ctx context.Context, storeID, id uuid.UUID) (*supply.Supply, error) {
	key := supplyCacheKey(storeID, id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supply from cache: %w", err)
	}

	var s supply.Supply
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Error("corrupted supply cache entry, dropping it",
			zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, nil
	}
	return &s, nil
}

// Set stores a supply with the given TTL
func (c *RedisSupplyCache) Set(ctx context.Context, s *supply.Supply, ttl time.Duration) error {
	if s == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal supply: %w", err)
	}

	if err := c.client.Set(ctx, supplyCacheKey(s.StoreID, s.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set supply in cache: %w", err)
	}
	return nil
}

// Delete removes a single supply from cache
func (c *RedisSupplyCache) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := c.client.Del(ctx, supplyCacheKey(storeID, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete supply from cache: %w", err)
	}
	return nil
}

// InvalidateStore removes every cached supply for a store. SCAN keeps
// Redis responsive; KEYS would block on large keyspaces.
func (c *RedisSupplyCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) error {
	var cursor uint64
	pattern := storeKeyPrefix(storeID) + "*"

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close releases the Redis client if this cache owns it
func (c *RedisSupplyCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ SupplyCache = (*RedisSupplyCache)(nil)
