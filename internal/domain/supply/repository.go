package supply

import (
	"context"

	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence operations for supplies.
// The quotation core only ever reads through FindByIDForStore; the rest
// serves the supply-management endpoints.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supply, error)
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Supply, error)
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*Supply, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Supply, error)
	FindByCategory(ctx context.Context, storeID uuid.UUID, category Category, filter shared.Filter) ([]Supply, error)
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, s *Supply) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)
}
