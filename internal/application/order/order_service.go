package order

import (
	"context"

	appquote "github.com/frameshop/backend/internal/application/quote"
	"github.com/frameshop/backend/internal/domain/order"
	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteCalculator recalculates a quotation from its selection.
// This decouples the order Service from the concrete quote service.
type QuoteCalculator interface {
	Calculate(ctx context.Context, storeID uuid.UUID, req appquote.CalculateRequest) (*appquote.CalculateResponse, error)
}

// Service handles frame-order operations
type Service struct {
	repo    order.Repository
	numbers order.NumberAllocator
	quotes  QuoteCalculator
	logger  *zap.Logger
}

// NewService creates an order Service
func NewService(repo order.Repository, numbers order.NumberAllocator, quotes QuoteCalculator, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		numbers: numbers,
		quotes:  quotes,
		logger:  logger,
	}
}

// Create recalculates the quote and saves it as a new draft order with
// the next sequential number for the store.
func (s *Service) Create(ctx context.Context, storeID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	calc, err := s.quotes.Calculate(ctx, storeID, req.Quote)
	if err != nil {
		return nil, err
	}
	if len(calc.MissingSupplies) > 0 {
		return nil, shared.ErrMissingSupplies.WithMessage(
			"Cannot create an order from a quote with unresolved supplies")
	}

	number, err := s.numbers.NextNumber(ctx, storeID)
	if err != nil {
		return nil, err
	}

	o, err := order.NewFrameOrder(storeID, number, req.CustomerName, req.Quote.ToDomain(), calc.Result)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		if err := o.UpdateCustomer(req.CustomerName, req.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("frame order created",
		zap.Int64("number", o.Number),
		zap.String("order_id", o.ID.String()),
		zap.String("store_id", storeID.String()),
	)

	response, err := ToOrderResponse(o)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *Service) GetByID(ctx context.Context, storeID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.repo.FindByIDForStore(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}

	response, err := ToOrderResponse(o)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByNumber retrieves an order by its sequential number
func (s *Service) GetByNumber(ctx context.Context, storeID uuid.UUID, number int64) (*OrderResponse, error) {
	o, err := s.repo.FindByNumber(ctx, storeID, number)
	if err != nil {
		return nil, err
	}

	response, err := ToOrderResponse(o)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(ctx context.Context, storeID uuid.UUID, filter OrderListFilter) ([]OrderListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "number"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		if !filter.Status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		domainFilter.Filters["status"] = string(filter.Status)
	}

	orders, err := s.repo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListResponses(orders), total, nil
}

// Update edits the customer fields of a draft order
func (s *Service) Update(ctx context.Context, storeID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.repo.FindByIDForStore(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}

	customerName := o.CustomerName
	if req.CustomerName != nil {
		customerName = *req.CustomerName
	}
	notes := o.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := o.UpdateCustomer(customerName, notes); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	response, err := ToOrderResponse(o)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Approve moves a draft order to approved
func (s *Service) Approve(ctx context.Context, storeID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, storeID, orderID, (*order.FrameOrder).Approve)
}

// SendToProduction moves an approved order to production
func (s *Service) SendToProduction(ctx context.Context, storeID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, storeID, orderID, (*order.FrameOrder).SendToProduction)
}

// Cancel cancels an order that hasn't reached production
func (s *Service) Cancel(ctx context.Context, storeID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, storeID, orderID, (*order.FrameOrder).Cancel)
}

func (s *Service) transition(ctx context.Context, storeID, orderID uuid.UUID, op func(*order.FrameOrder) error) (*OrderResponse, error) {
	o, err := s.repo.FindByIDForStore(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}

	if err := op(o); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("frame order status changed",
		zap.Int64("number", o.Number),
		zap.String("status", string(o.Status)),
	)

	response, err := ToOrderResponse(o)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a draft or cancelled order. Approved and in-production
// orders are history and cannot be deleted.
func (s *Service) Delete(ctx context.Context, storeID, orderID uuid.UUID) error {
	o, err := s.repo.FindByIDForStore(ctx, storeID, orderID)
	if err != nil {
		return err
	}

	if o.Status != order.StatusDraft && o.Status != order.StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only draft or cancelled orders can be deleted")
	}

	return s.repo.Delete(ctx, o.ID)
}
