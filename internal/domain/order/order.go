package order

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the workshop status of a frame order
type Status string

const (
	StatusDraft        Status = "DRAFT"
	StatusApproved     Status = "APPROVED"
	StatusInProduction Status = "IN_PRODUCTION"
	StatusCancelled    Status = "CANCELLED"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusInProduction, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if a status transition is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusApproved || target == StatusCancelled
	case StatusApproved:
		return target == StatusInProduction || target == StatusCancelled
	case StatusInProduction, StatusCancelled:
		return false
	default:
		return false
	}
}

// FrameOrder is a saved quotation promoted to a customer order. It snapshots
// the calculated quote so later supply price changes never rewrite history.
type FrameOrder struct {
	shared.StoreAggregateRoot
	Number       int64  `gorm:"not null;uniqueIndex:idx_frame_order_store_number,priority:2"`
	CustomerName string `gorm:"type:varchar(200)"`
	Notes        string `gorm:"type:text"`
	Status       Status `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	HeightCm    decimal.Decimal    `gorm:"type:decimal(10,2);not null"`
	WidthCm     decimal.Decimal    `gorm:"type:decimal(10,2);not null"`
	Quantity    int                `gorm:"not null;default:1"`
	PaymentTerm supply.PaymentTerm `gorm:"type:varchar(10);not null;default:'net120'"`

	AreaM2             decimal.Decimal `gorm:"type:decimal(12,6);not null;default:0"`
	PerimeterCm        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BarsNeeded         int             `gorm:"not null;default:0"`
	LeftoverCm         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BilledLinearMeters decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	WasteCost          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	Items string `gorm:"type:jsonb;not null;default:'[]'"`

	CostTotal        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Markup           decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	SellTotal        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MarginPercent    decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	DiscountPercent  decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SurchargePercent decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	SurchargeAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FinalValue       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (FrameOrder) TableName() string {
	return "frame_orders"
}

// NewFrameOrder creates a frame order from a calculated quote. The number
// must come from the persistence layer's atomic sequence.
func NewFrameOrder(storeID uuid.UUID, number int64, customerName string, req quote.Request, result quote.Result) (*FrameOrder, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number must be positive")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}

	itemsJSON, err := json.Marshal(result.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize line items: %w", err)
	}

	term := req.PaymentTerm
	if !supply.ValidPaymentTerm(term) {
		term = supply.DefaultPaymentTerm
	}

	return &FrameOrder{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Number:             number,
		CustomerName:       customerName,
		Status:             StatusDraft,
		HeightCm:           req.HeightCm,
		WidthCm:            req.WidthCm,
		Quantity:           req.Quantity,
		PaymentTerm:        term,
		AreaM2:             result.AreaM2,
		PerimeterCm:        result.PerimeterCm,
		BarsNeeded:         result.BarsNeeded,
		LeftoverCm:         result.LeftoverCm,
		BilledLinearMeters: result.BilledLinearMeters,
		WasteCost:          result.WasteCost,
		Items:              string(itemsJSON),
		CostTotal:          result.CostTotal,
		Markup:             result.Markup,
		SellTotal:          result.SellTotal,
		MarginPercent:      result.MarginPercent,
		DiscountPercent:    result.DiscountPercent,
		DiscountAmount:     result.DiscountAmount,
		SurchargePercent:   result.SurchargePercent,
		SurchargeAmount:    result.SurchargeAmount,
		FinalValue:         result.FinalValue,
	}, nil
}

// LineItems deserializes the snapshotted quote line items
func (o *FrameOrder) LineItems() ([]quote.LineItem, error) {
	var items []quote.LineItem
	if err := json.Unmarshal([]byte(o.Items), &items); err != nil {
		return nil, fmt.Errorf("failed to deserialize line items: %w", err)
	}
	return items, nil
}

// Approve moves a draft order to approved
func (o *FrameOrder) Approve() error {
	return o.transition(StatusApproved)
}

// SendToProduction moves an approved order to production
func (o *FrameOrder) SendToProduction() error {
	return o.transition(StatusInProduction)
}

// Cancel cancels an order that hasn't reached production
func (o *FrameOrder) Cancel() error {
	return o.transition(StatusCancelled)
}

func (o *FrameOrder) transition(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.touch()
	return nil
}

// UpdateCustomer updates the customer name and notes on a draft order
func (o *FrameOrder) UpdateCustomer(customerName, notes string) error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be edited")
	}
	if strings.TrimSpace(customerName) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	o.CustomerName = customerName
	o.Notes = notes
	o.touch()
	return nil
}

func (o *FrameOrder) touch() {
	o.Touch()
	o.IncrementVersion()
}
