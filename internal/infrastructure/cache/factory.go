package cache

import (
	"github.com/frameshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewSupplyCache creates the supply cache selected by configuration.
// When the Redis backend is configured but unreachable, it falls back to
// the in-memory cache with a warning rather than failing startup.
func NewSupplyCache(cfg config.CacheConfig, redisCfg config.RedisConfig, logger *zap.Logger) SupplyCache {
	if cfg.Backend == "redis" {
		c, err := NewRedisSupplyCache(redisCfg, logger)
		if err == nil {
			logger.Info("using Redis supply cache", zap.String("addr", redisCfg.Addr()))
			return c
		}
		logger.Warn("Redis unavailable, falling back to in-memory supply cache. "+
			"Cache entries will not be shared across instances.",
			zap.Error(err),
		)
	}
	return NewInMemorySupplyCache()
}
