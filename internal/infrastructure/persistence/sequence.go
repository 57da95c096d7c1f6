package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderNumberSequence implements order.NumberAllocator on a per-store
// counter row. The upsert increments and returns the counter in a single
// statement, so two concurrent allocations can never observe the same
// value.
type OrderNumberSequence struct {
	db *gorm.DB
}

// NewOrderNumberSequence creates a new OrderNumberSequence
func NewOrderNumberSequence(db *gorm.DB) *OrderNumberSequence {
	return &OrderNumberSequence{db: db}
}

// NextNumber allocates the next order number for the store
func (s *OrderNumberSequence) NextNumber(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var number int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO order_number_sequences (store_id, last_number)
		VALUES (?, 1)
		ON CONFLICT (store_id)
		DO UPDATE SET last_number = order_number_sequences.last_number + 1
		RETURNING last_number`, storeID).Scan(&number).Error
	if err != nil {
		return 0, fmt.Errorf("failed to allocate order number: %w", err)
	}
	return number, nil
}
