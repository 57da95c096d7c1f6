package supply

import (
	"time"

	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSupplyRequest represents a request to register a new supply
type CreateSupplyRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=50"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Category    supply.Category `json:"category" binding:"required"`
	Supplier    string          `json:"supplier" binding:"max=100"`

	CostCash   decimal.Decimal `json:"cost_cash"`
	CostNet30  decimal.Decimal `json:"cost_net30"`
	CostNet60  decimal.Decimal `json:"cost_net60"`
	CostNet90  decimal.Decimal `json:"cost_net90"`
	CostNet120 decimal.Decimal `json:"cost_net120"`
	CostNet150 decimal.Decimal `json:"cost_net150"`

	ManufacturePrice decimal.Decimal `json:"manufacture_price"`
	RetailPrice      decimal.Decimal `json:"retail_price"`

	ProfileWidthCm *decimal.Decimal `json:"profile_width_cm"`
	BarLengthCm    *decimal.Decimal `json:"bar_length_cm"`
}

// UpdateSupplyRequest represents a request to update a supply
type UpdateSupplyRequest struct {
	Description *string `json:"description" binding:"omitempty,min=1,max=200"`
	Supplier    *string `json:"supplier" binding:"omitempty,max=100"`

	CostCash   *decimal.Decimal `json:"cost_cash"`
	CostNet30  *decimal.Decimal `json:"cost_net30"`
	CostNet60  *decimal.Decimal `json:"cost_net60"`
	CostNet90  *decimal.Decimal `json:"cost_net90"`
	CostNet120 *decimal.Decimal `json:"cost_net120"`
	CostNet150 *decimal.Decimal `json:"cost_net150"`

	ManufacturePrice *decimal.Decimal `json:"manufacture_price"`
	RetailPrice      *decimal.Decimal `json:"retail_price"`

	ProfileWidthCm *decimal.Decimal `json:"profile_width_cm"`
	BarLengthCm    *decimal.Decimal `json:"bar_length_cm"`
}

// SupplyListFilter carries list query parameters
type SupplyListFilter struct {
	Page     int             `form:"page"`
	PageSize int             `form:"page_size"`
	OrderBy  string          `form:"order_by"`
	OrderDir string          `form:"order_dir"`
	Search   string          `form:"search"`
	Category supply.Category `form:"category"`
	Active   *bool           `form:"active"`
}

// SupplyResponse represents a supply in API responses
type SupplyResponse struct {
	ID          uuid.UUID       `json:"id"`
	StoreID     uuid.UUID       `json:"store_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Category    supply.Category `json:"category"`
	Unit        string          `json:"unit"`
	Supplier    string          `json:"supplier"`

	CostCash   decimal.Decimal `json:"cost_cash"`
	CostNet30  decimal.Decimal `json:"cost_net30"`
	CostNet60  decimal.Decimal `json:"cost_net60"`
	CostNet90  decimal.Decimal `json:"cost_net90"`
	CostNet120 decimal.Decimal `json:"cost_net120"`
	CostNet150 decimal.Decimal `json:"cost_net150"`

	ManufacturePrice decimal.Decimal `json:"manufacture_price"`
	RetailPrice      decimal.Decimal `json:"retail_price"`

	ProfileWidthCm decimal.Decimal `json:"profile_width_cm"`
	BarLengthCm    decimal.Decimal `json:"bar_length_cm"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToSupplyResponse converts a domain supply to a response DTO
func ToSupplyResponse(s *supply.Supply) SupplyResponse {
	return SupplyResponse{
		ID:               s.ID,
		StoreID:          s.StoreID,
		Code:             s.Code,
		Description:      s.Description,
		Category:         s.Category,
		Unit:             s.Unit(),
		Supplier:         s.Supplier,
		CostCash:         s.CostSchedule.CostCash,
		CostNet30:        s.CostSchedule.CostNet30,
		CostNet60:        s.CostSchedule.CostNet60,
		CostNet90:        s.CostSchedule.CostNet90,
		CostNet120:       s.CostSchedule.CostNet120,
		CostNet150:       s.CostSchedule.CostNet150,
		ManufacturePrice: s.ManufacturePrice,
		RetailPrice:      s.RetailPrice,
		ProfileWidthCm:   s.ProfileWidthCm,
		BarLengthCm:      s.BarLengthCm,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		Version:          s.Version,
	}
}

// ToSupplyResponses converts a slice of domain supplies
func ToSupplyResponses(supplies []supply.Supply) []SupplyResponse {
	responses := make([]SupplyResponse, len(supplies))
	for i := range supplies {
		responses[i] = ToSupplyResponse(&supplies[i])
	}
	return responses
}
