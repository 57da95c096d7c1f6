package supply

import (
	"context"

	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles supply-management operations
type Service struct {
	repo supply.Repository
}

// NewService creates a supply Service
func NewService(repo supply.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new supply
func (s *Service) Create(ctx context.Context, storeID uuid.UUID, req CreateSupplyRequest) (*SupplyResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, storeID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Supply with this code already exists")
	}

	sup, err := supply.NewSupply(storeID, req.Code, req.Description, req.Category)
	if err != nil {
		return nil, err
	}

	if req.Supplier != "" {
		if err := sup.Update(req.Description, req.Supplier); err != nil {
			return nil, err
		}
	}

	sup.SetCostSchedule(supply.CostSchedule{
		CostCash:   req.CostCash,
		CostNet30:  req.CostNet30,
		CostNet60:  req.CostNet60,
		CostNet90:  req.CostNet90,
		CostNet120: req.CostNet120,
		CostNet150: req.CostNet150,
	})

	if err := sup.SetPrices(req.ManufacturePrice, req.RetailPrice); err != nil {
		return nil, err
	}

	if req.ProfileWidthCm != nil || req.BarLengthCm != nil {
		width := decimal.Zero
		if req.ProfileWidthCm != nil {
			width = *req.ProfileWidthCm
		}
		barLength := sup.BarLengthCm
		if req.BarLengthCm != nil {
			barLength = *req.BarLengthCm
		}
		if err := sup.SetFrameProfile(width, barLength); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, sup); err != nil {
		return nil, err
	}

	response := ToSupplyResponse(sup)
	return &response, nil
}

// GetByID retrieves a supply by ID
func (s *Service) GetByID(ctx context.Context, storeID, supplyID uuid.UUID) (*SupplyResponse, error) {
	sup, err := s.repo.FindByIDForStore(ctx, storeID, supplyID)
	if err != nil {
		return nil, err
	}

	response := ToSupplyResponse(sup)
	return &response, nil
}

// GetByCode retrieves a supply by its code
func (s *Service) GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*SupplyResponse, error) {
	sup, err := s.repo.FindByCode(ctx, storeID, code)
	if err != nil {
		return nil, err
	}

	response := ToSupplyResponse(sup)
	return &response, nil
}

// List retrieves supplies with filtering and pagination
func (s *Service) List(ctx context.Context, storeID uuid.UUID, filter SupplyListFilter) ([]SupplyResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	var supplies []supply.Supply
	var err error
	if filter.Category != "" {
		supplies, err = s.repo.FindByCategory(ctx, storeID, filter.Category, domainFilter)
	} else {
		supplies, err = s.repo.FindAllForStore(ctx, storeID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	total, err := s.repo.Count(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplyResponses(supplies), total, nil
}

// Update updates a supply
func (s *Service) Update(ctx context.Context, storeID, supplyID uuid.UUID, req UpdateSupplyRequest) (*SupplyResponse, error) {
	sup, err := s.repo.FindByIDForStore(ctx, storeID, supplyID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil || req.Supplier != nil {
		description := sup.Description
		if req.Description != nil {
			description = *req.Description
		}
		supplier := sup.Supplier
		if req.Supplier != nil {
			supplier = *req.Supplier
		}
		if err := sup.Update(description, supplier); err != nil {
			return nil, err
		}
	}

	if hasCostChange(req) {
		schedule := sup.CostSchedule
		applyCost(&schedule.CostCash, req.CostCash)
		applyCost(&schedule.CostNet30, req.CostNet30)
		applyCost(&schedule.CostNet60, req.CostNet60)
		applyCost(&schedule.CostNet90, req.CostNet90)
		applyCost(&schedule.CostNet120, req.CostNet120)
		applyCost(&schedule.CostNet150, req.CostNet150)
		sup.SetCostSchedule(schedule)
	}

	if req.ManufacturePrice != nil || req.RetailPrice != nil {
		manufacture := sup.ManufacturePrice
		if req.ManufacturePrice != nil {
			manufacture = *req.ManufacturePrice
		}
		retail := sup.RetailPrice
		if req.RetailPrice != nil {
			retail = *req.RetailPrice
		}
		if err := sup.SetPrices(manufacture, retail); err != nil {
			return nil, err
		}
	}

	if req.ProfileWidthCm != nil || req.BarLengthCm != nil {
		width := sup.ProfileWidthCm
		if req.ProfileWidthCm != nil {
			width = *req.ProfileWidthCm
		}
		barLength := sup.BarLengthCm
		if req.BarLengthCm != nil {
			barLength = *req.BarLengthCm
		}
		if err := sup.SetFrameProfile(width, barLength); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, sup); err != nil {
		return nil, err
	}

	response := ToSupplyResponse(sup)
	return &response, nil
}

// Activate marks a supply as selectable
func (s *Service) Activate(ctx context.Context, storeID, supplyID uuid.UUID) error {
	sup, err := s.repo.FindByIDForStore(ctx, storeID, supplyID)
	if err != nil {
		return err
	}

	sup.Activate()
	return s.repo.Save(ctx, sup)
}

// Deactivate hides a supply from selection
func (s *Service) Deactivate(ctx context.Context, storeID, supplyID uuid.UUID) error {
	sup, err := s.repo.FindByIDForStore(ctx, storeID, supplyID)
	if err != nil {
		return err
	}

	sup.Deactivate()
	return s.repo.Save(ctx, sup)
}

// Delete removes a supply
func (s *Service) Delete(ctx context.Context, storeID, supplyID uuid.UUID) error {
	sup, err := s.repo.FindByIDForStore(ctx, storeID, supplyID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, sup.ID)
}

func hasCostChange(req UpdateSupplyRequest) bool {
	return req.CostCash != nil || req.CostNet30 != nil || req.CostNet60 != nil ||
		req.CostNet90 != nil || req.CostNet120 != nil || req.CostNet150 != nil
}

func applyCost(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}
