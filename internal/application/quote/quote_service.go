package quote

import (
	"context"
	"errors"

	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates quote calculations: it resolves the selected
// supplies through the repository and runs the pure calculator over them.
type Service struct {
	supplies supply.Repository
	calc     *quote.Calculator
	logger   *zap.Logger
}

// NewService creates a quote Service
func NewService(supplies supply.Repository, calc *quote.Calculator, logger *zap.Logger) *Service {
	return &Service{
		supplies: supplies,
		calc:     calc,
		logger:   logger,
	}
}

// Calculate resolves the selection and computes the quote. A supply id that
// doesn't resolve is non-fatal: the line item is omitted, the id reported
// in MissingSupplies and a warning logged.
func (s *Service) Calculate(ctx context.Context, storeID uuid.UUID, req CalculateRequest) (*CalculateResponse, error) {
	domainReq := req.ToDomain()
	if err := domainReq.Dimensions().Validate(); err != nil {
		return nil, err
	}

	sel, missing, err := s.resolveSelection(ctx, storeID, req)
	if err != nil {
		return nil, err
	}

	result, err := s.calc.Calculate(domainReq, sel)
	if err != nil {
		return nil, err
	}

	for _, item := range result.Items {
		if item.RetailFallback {
			s.logger.Warn("supply has no manufacturing price, using retail price",
				zap.String("supply_id", item.SupplyID.String()),
				zap.String("description", item.Description),
			)
		}
	}

	return &CalculateResponse{Result: result, MissingSupplies: missing}, nil
}

// resolveSelection looks up each selected supply. Lookups are independent
// reads with no ordering requirement between them.
func (s *Service) resolveSelection(ctx context.Context, storeID uuid.UUID, req CalculateRequest) (quote.Selection, []uuid.UUID, error) {
	var sel quote.Selection
	var missing []uuid.UUID

	resolve := func(id *uuid.UUID, enabled bool) (*supply.Supply, error) {
		if !enabled || id == nil || *id == uuid.Nil {
			return nil, nil
		}
		found, err := s.supplies.FindByIDForStore(ctx, storeID, *id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("selected supply not found, omitting from quote",
					zap.String("supply_id", id.String()))
				missing = append(missing, *id)
				return nil, nil
			}
			return nil, err
		}
		return found, nil
	}

	var err error
	if sel.Frame, err = resolve(req.FrameID, true); err != nil {
		return quote.Selection{}, nil, err
	}
	if sel.Glass, err = resolve(req.GlassID, req.UseGlass); err != nil {
		return quote.Selection{}, nil, err
	}
	if sel.Backing, err = resolve(req.BackingID, req.UseBacking); err != nil {
		return quote.Selection{}, nil, err
	}
	if sel.Paper, err = resolve(req.PaperID, req.UsePaper); err != nil {
		return quote.Selection{}, nil, err
	}
	if sel.MatBoard, err = resolve(req.MatBoardID, req.UseMatBoard); err != nil {
		return quote.Selection{}, nil, err
	}

	if req.UseAccessories {
		for _, id := range req.AccessoryIDs {
			accessoryID := id
			found, err := resolve(&accessoryID, true)
			if err != nil {
				return quote.Selection{}, nil, err
			}
			if found != nil {
				sel.Accessories = append(sel.Accessories, found)
			}
		}
	}

	return sel, missing, nil
}
