package cache

import (
	"context"
	"time"

	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
)

// SupplyCache is a read cache for supplies. Get returns (nil, nil) on a
// miss; cache errors are surfaced so callers can decide to fall through
// to the repository.
type SupplyCache interface {
	Get(ctx context.Context, storeID, id uuid.UUID) (*supply.Supply, error)
	Set(ctx context.Context, s *supply.Supply, ttl time.Duration) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	InvalidateStore(ctx context.Context, storeID uuid.UUID) error
	Close() error
}

func supplyCacheKey(storeID, id uuid.UUID) string {
	return "supply:" + storeID.String() + ":" + id.String()
}

func storeKeyPrefix(storeID uuid.UUID) string {
	return "supply:" + storeID.String() + ":"
}
