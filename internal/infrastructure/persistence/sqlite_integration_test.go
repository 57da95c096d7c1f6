package persistence

import (
	"context"
	"testing"

	"github.com/frameshop/backend/internal/domain/order"
	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteDB opens an isolated in-memory database with the full schema.
// SQLite understands the upsert/RETURNING SQL the allocator uses, so the
// round-trip behavior of the repositories can be tested without postgres.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&supply.Supply{}, &order.FrameOrder{}))
	require.NoError(t, db.Exec(
		"CREATE TABLE order_number_sequences (store_id TEXT PRIMARY KEY, last_number BIGINT NOT NULL DEFAULT 0)",
	).Error)

	return db
}

func seedSupply(t *testing.T, repo *GormSupplyRepository, storeID uuid.UUID, code string, category supply.Category) *supply.Supply {
	t.Helper()

	s, err := supply.NewSupply(storeID, code, "integration seed "+code, category)
	require.NoError(t, err)
	s.SetCostSchedule(supply.CostSchedule{CostNet120: decimal.NewFromInt(50)})
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func TestSupplyRepositoryRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	created := seedSupply(t, repo, storeID, "MOL-001", supply.CategoryFrame)

	t.Run("find by id for store", func(t *testing.T) {
		found, err := repo.FindByIDForStore(ctx, storeID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "MOL-001", found.Code)
		assert.True(t, found.CostSchedule.CostNet120.Equal(decimal.NewFromInt(50)))
	})

	t.Run("wrong store sees nothing", func(t *testing.T) {
		_, err := repo.FindByIDForStore(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by code is case insensitive", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, storeID, "mol-001")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("exists by code", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, storeID, "MOL-001")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, storeID, "VID-404")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("category filter and count", func(t *testing.T) {
		seedSupply(t, repo, storeID, "VID-001", supply.CategoryGlass)

		glass, err := repo.FindByCategory(ctx, storeID, supply.CategoryGlass, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, glass, 1)
		assert.Equal(t, "VID-001", glass[0].Code)

		total, err := repo.Count(ctx, storeID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		_, err := repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, created.ID), shared.ErrNotFound)
	})
}

func newTestOrder(t *testing.T, storeID uuid.UUID, number int64) *order.FrameOrder {
	t.Helper()

	req := quote.Request{
		HeightCm: decimal.NewFromInt(60),
		WidthCm:  decimal.NewFromInt(80),
		Quantity: 1,
	}
	result := quote.Result{
		CostTotal:  decimal.NewFromInt(164),
		SellTotal:  decimal.NewFromInt(456),
		FinalValue: decimal.NewFromInt(456),
	}

	o, err := order.NewFrameOrder(storeID, number, "Helena Souza", req, result)
	require.NoError(t, err)
	return o
}

func TestOrderRepositoryRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	created := newTestOrder(t, storeID, 1)
	require.NoError(t, repo.Save(ctx, created))

	t.Run("find by number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, storeID, 1)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, order.StatusDraft, found.Status)
		assert.True(t, found.FinalValue.Equal(decimal.NewFromInt(456)))
	})

	t.Run("status filter", func(t *testing.T) {
		second := newTestOrder(t, storeID, 2)
		require.NoError(t, second.Approve())
		require.NoError(t, repo.Save(ctx, second))

		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"status": string(order.StatusApproved)}

		approved, err := repo.FindAllForStore(ctx, storeID, filter)
		require.NoError(t, err)
		require.Len(t, approved, 1)
		assert.Equal(t, int64(2), approved[0].Number)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		_, err := repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderNumberSequenceAllocation(t *testing.T) {
	db := newSQLiteDB(t)
	seq := NewOrderNumberSequence(db)
	ctx := context.Background()

	storeA := uuid.New()
	storeB := uuid.New()

	for want := int64(1); want <= 3; want++ {
		got, err := seq.NextNumber(ctx, storeA)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Each store counts independently
	got, err := seq.NextNumber(ctx, storeB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
