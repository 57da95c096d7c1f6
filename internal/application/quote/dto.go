package quote

import (
	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculateRequest carries the parameters for one quote calculation
type CalculateRequest struct {
	HeightCm decimal.Decimal `json:"height_cm" binding:"required"`
	WidthCm  decimal.Decimal `json:"width_cm" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,min=1"`

	FrameID        *uuid.UUID  `json:"frame_id"`
	UseGlass       bool        `json:"use_glass"`
	GlassID        *uuid.UUID  `json:"glass_id"`
	UseBacking     bool        `json:"use_backing"`
	BackingID      *uuid.UUID  `json:"backing_id"`
	UsePaper       bool        `json:"use_paper"`
	PaperID        *uuid.UUID  `json:"paper_id"`
	UseMatBoard    bool        `json:"use_mat_board"`
	MatBoardID     *uuid.UUID  `json:"mat_board_id"`
	UseAccessories bool        `json:"use_accessories"`
	AccessoryIDs   []uuid.UUID `json:"accessory_ids"`

	PaymentTerm supply.PaymentTerm `json:"payment_term" binding:"omitempty,paymentterm"`

	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	SurchargePercent decimal.Decimal `json:"surcharge_percent"`
	SurchargeAmount  decimal.Decimal `json:"surcharge_amount"`
}

// ToDomain converts the application request to the core value object
func (r CalculateRequest) ToDomain() quote.Request {
	return quote.Request{
		HeightCm:         r.HeightCm,
		WidthCm:          r.WidthCm,
		Quantity:         r.Quantity,
		FrameID:          r.FrameID,
		UseGlass:         r.UseGlass,
		GlassID:          r.GlassID,
		UseBacking:       r.UseBacking,
		BackingID:        r.BackingID,
		UsePaper:         r.UsePaper,
		PaperID:          r.PaperID,
		UseMatBoard:      r.UseMatBoard,
		MatBoardID:       r.MatBoardID,
		UseAccessories:   r.UseAccessories,
		AccessoryIDs:     r.AccessoryIDs,
		PaymentTerm:      r.PaymentTerm,
		DiscountPercent:  r.DiscountPercent,
		DiscountAmount:   r.DiscountAmount,
		SurchargePercent: r.SurchargePercent,
		SurchargeAmount:  r.SurchargeAmount,
	}
}

// CalculateResponse is the calculated quote plus any non-fatal warnings
// about supplies that could not be resolved
type CalculateResponse struct {
	quote.Result
	MissingSupplies []uuid.UUID `json:"missing_supplies,omitempty"`
}
