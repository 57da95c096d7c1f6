package order

import (
	"time"

	appquote "github.com/frameshop/backend/internal/application/quote"
	"github.com/frameshop/backend/internal/domain/order"
	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest promotes a quotation to a frame order. The quote is
// recalculated server-side from the selection; client totals are ignored.
type CreateOrderRequest struct {
	CustomerName string `json:"customer_name" binding:"required,min=1,max=200"`
	Notes        string `json:"notes" binding:"max=2000"`

	Quote appquote.CalculateRequest `json:"quote" binding:"required"`
}

// UpdateOrderRequest updates the editable fields of a draft order
type UpdateOrderRequest struct {
	CustomerName *string `json:"customer_name" binding:"omitempty,min=1,max=200"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
}

// OrderListFilter carries list query parameters
type OrderListFilter struct {
	Page     int          `form:"page"`
	PageSize int          `form:"page_size"`
	OrderBy  string       `form:"order_by"`
	OrderDir string       `form:"order_dir"`
	Search   string       `form:"search"`
	Status   order.Status `form:"status"`
}

// OrderResponse represents a frame order in API responses
type OrderResponse struct {
	ID           uuid.UUID    `json:"id"`
	StoreID      uuid.UUID    `json:"store_id"`
	Number       int64        `json:"number"`
	CustomerName string       `json:"customer_name"`
	Notes        string       `json:"notes"`
	Status       order.Status `json:"status"`

	HeightCm    decimal.Decimal    `json:"height_cm"`
	WidthCm     decimal.Decimal    `json:"width_cm"`
	Quantity    int                `json:"quantity"`
	PaymentTerm supply.PaymentTerm `json:"payment_term"`

	AreaM2             decimal.Decimal `json:"area_m2"`
	PerimeterCm        decimal.Decimal `json:"perimeter_cm"`
	BarsNeeded         int             `json:"bars_needed"`
	LeftoverCm         decimal.Decimal `json:"leftover_cm"`
	BilledLinearMeters decimal.Decimal `json:"billed_linear_meters"`
	WasteCost          decimal.Decimal `json:"waste_cost"`

	Items []quote.LineItem `json:"items"`

	CostTotal        decimal.Decimal `json:"cost_total"`
	Markup           decimal.Decimal `json:"markup"`
	SellTotal        decimal.Decimal `json:"sell_total"`
	MarginPercent    decimal.Decimal `json:"margin_percent"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	SurchargePercent decimal.Decimal `json:"surcharge_percent"`
	SurchargeAmount  decimal.Decimal `json:"surcharge_amount"`
	FinalValue       decimal.Decimal `json:"final_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// OrderListResponse is the compact list representation of an order
type OrderListResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       int64           `json:"number"`
	CustomerName string          `json:"customer_name"`
	Status       order.Status    `json:"status"`
	Quantity     int             `json:"quantity"`
	FinalValue   decimal.Decimal `json:"final_value"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.FrameOrder) (OrderResponse, error) {
	items, err := o.LineItems()
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:                 o.ID,
		StoreID:            o.StoreID,
		Number:             o.Number,
		CustomerName:       o.CustomerName,
		Notes:              o.Notes,
		Status:             o.Status,
		HeightCm:           o.HeightCm,
		WidthCm:            o.WidthCm,
		Quantity:           o.Quantity,
		PaymentTerm:        o.PaymentTerm,
		AreaM2:             o.AreaM2,
		PerimeterCm:        o.PerimeterCm,
		BarsNeeded:         o.BarsNeeded,
		LeftoverCm:         o.LeftoverCm,
		BilledLinearMeters: o.BilledLinearMeters,
		WasteCost:          o.WasteCost,
		Items:              items,
		CostTotal:          o.CostTotal,
		Markup:             o.Markup,
		SellTotal:          o.SellTotal,
		MarginPercent:      o.MarginPercent,
		DiscountPercent:    o.DiscountPercent,
		DiscountAmount:     o.DiscountAmount,
		SurchargePercent:   o.SurchargePercent,
		SurchargeAmount:    o.SurchargeAmount,
		FinalValue:         o.FinalValue,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Version:            o.Version,
	}, nil
}

// ToOrderListResponses converts a slice of domain orders
func ToOrderListResponses(orders []order.FrameOrder) []OrderListResponse {
	responses := make([]OrderListResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		responses[i] = OrderListResponse{
			ID:           o.ID,
			Number:       o.Number,
			CustomerName: o.CustomerName,
			Status:       o.Status,
			Quantity:     o.Quantity,
			FinalValue:   o.FinalValue,
			CreatedAt:    o.CreatedAt,
		}
	}
	return responses
}
