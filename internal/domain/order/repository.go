package order

import (
	"context"

	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence operations for frame orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FrameOrder, error)
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*FrameOrder, error)
	FindByNumber(ctx context.Context, storeID uuid.UUID, number int64) (*FrameOrder, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]FrameOrder, error)
	Save(ctx context.Context, o *FrameOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)
}

// NumberAllocator hands out sequential order numbers. Implementations must
// be atomic under concurrent allocation: two orders created at the same
// time never share a number.
type NumberAllocator interface {
	NextNumber(ctx context.Context, storeID uuid.UUID) (int64, error)
}
