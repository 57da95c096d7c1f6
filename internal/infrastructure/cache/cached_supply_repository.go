package cache

import (
	"context"
	"time"

	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedSupplyRepository decorates a supply.Repository with a
// read-through cache on the single-supply lookups that the quote
// calculator hits on every request. List queries always go to the
// database. Cache failures degrade to the database, never to an error.
type CachedSupplyRepository struct {
	inner  supply.Repository
	cache  SupplyCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSupplyRepository creates a caching decorator around repo
func NewCachedSupplyRepository(inner supply.Repository, c SupplyCache, ttl time.Duration, logger *zap.Logger) *CachedSupplyRepository {
	return &CachedSupplyRepository{inner: inner, cache: c, ttl: ttl, logger: logger}
}

// FindByID delegates to the inner repository; the cache key needs the
// store id, which this lookup doesn't carry.
func (r *CachedSupplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*supply.Supply, error) {
	return r.inner.FindByID(ctx, id)
}

// FindByIDForStore serves from cache when possible
func (r *CachedSupplyRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*supply.Supply, error) {
	cached, err := r.cache.Get(ctx, storeID, id)
	if err != nil {
		r.logger.Warn("supply cache read failed, hitting database", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	s, err := r.inner.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, s, r.ttl); err != nil {
		r.logger.Warn("supply cache write failed", zap.Error(err))
	}
	return s, nil
}

// FindByCode delegates to the inner repository
func (r *CachedSupplyRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*supply.Supply, error) {
	return r.inner.FindByCode(ctx, storeID, code)
}

// FindAllForStore delegates to the inner repository
func (r *CachedSupplyRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]supply.Supply, error) {
	return r.inner.FindAllForStore(ctx, storeID, filter)
}

// FindByCategory delegates to the inner repository
func (r *CachedSupplyRepository) FindByCategory(ctx context.Context, storeID uuid.UUID, category supply.Category, filter shared.Filter) ([]supply.Supply, error) {
	return r.inner.FindByCategory(ctx, storeID, category, filter)
}

// ExistsByCode delegates to the inner repository
func (r *CachedSupplyRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	return r.inner.ExistsByCode(ctx, storeID, code)
}

// Save writes through and invalidates the cached entry
func (r *CachedSupplyRepository) Save(ctx context.Context, s *supply.Supply) error {
	if err := r.inner.Save(ctx, s); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, s.StoreID, s.ID); err != nil {
		r.logger.Warn("supply cache invalidation failed", zap.Error(err))
	}
	return nil
}

// Delete removes the supply and drops any cached entry for it. The
// store id isn't known here, so the entry is left to expire by TTL when
// the inner delete doesn't surface it.
func (r *CachedSupplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, s.StoreID, id); err != nil {
		r.logger.Warn("supply cache invalidation failed", zap.Error(err))
	}
	return nil
}

// Count delegates to the inner repository
func (r *CachedSupplyRepository) Count(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.inner.Count(ctx, storeID, filter)
}

var _ supply.Repository = (*CachedSupplyRepository)(nil)
