package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplyRepository implements supply.Repository using GORM
type GormSupplyRepository struct {
	db *gorm.DB
}

// NewGormSupplyRepository creates a new GormSupplyRepository
func NewGormSupplyRepository(db *gorm.DB) *GormSupplyRepository {
	return &GormSupplyRepository{db: db}
}

// FindByID finds a supply by its ID
func (r *GormSupplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*supply.Supply, error) {
	var s supply.Supply
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByIDForStore finds a supply by ID within a store
func (r *GormSupplyRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*supply.Supply, error) {
	var s supply.Supply
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByCode finds a supply by its code within a store
func (r *GormSupplyRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*supply.Supply, error) {
	var s supply.Supply
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND code = ?", storeID, strings.ToUpper(code)).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAllForStore finds all supplies for a store
func (r *GormSupplyRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]supply.Supply, error) {
	var supplies []supply.Supply
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&supply.Supply{}).Where("store_id = ?", storeID),
		filter,
	)

	if err := query.Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// FindByCategory finds supplies of one category for a store
func (r *GormSupplyRepository) FindByCategory(ctx context.Context, storeID uuid.UUID, category supply.Category, filter shared.Filter) ([]supply.Supply, error) {
	var supplies []supply.Supply
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&supply.Supply{}).
			Where("store_id = ? AND category = ?", storeID, category),
		filter,
	)

	if err := query.Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// ExistsByCode checks if a supply with the given code exists in the store
func (r *GormSupplyRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&supply.Supply{}).
		Where("store_id = ? AND code = ?", storeID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a supply
func (r *GormSupplyRepository) Save(ctx context.Context, s *supply.Supply) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete deletes a supply
func (r *GormSupplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&supply.Supply{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts supplies for a store matching the filter
func (r *GormSupplyRepository) Count(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&supply.Supply{}).Where("store_id = ?", storeID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SupplySortFields, "code")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormSupplyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR description ILIKE ? OR supplier ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		case "supplier":
			query = query.Where("supplier = ?", value)
		}
	}

	return query
}
