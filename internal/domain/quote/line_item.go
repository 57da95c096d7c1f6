package quote

import (
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one priced supply within a quote
type LineItem struct {
	SupplyID    uuid.UUID       `json:"supply_id"`
	Description string          `json:"description"`
	Category    supply.Category `json:"category"`
	Unit        string          `json:"unit"`

	// Quantity is the billed quantity in the supply's unit: linear meters
	// for frames, m² (already multiplied by the order quantity) for
	// area-billed supplies, pieces for accessories.
	Quantity decimal.Decimal `json:"quantity"`

	UnitCost      decimal.Decimal `json:"unit_cost"`
	UnitSellPrice decimal.Decimal `json:"unit_sell_price"`
	CostSubtotal  decimal.Decimal `json:"cost_subtotal"`
	SellSubtotal  decimal.Decimal `json:"sell_subtotal"`

	// RetailFallback marks that the manufacturing sell price was unset
	// and the retail price was substituted
	RetailFallback bool `json:"retail_fallback,omitempty"`
}

// sellPrice resolves the unit sell price for a supply. The quotation core
// bills the manufacturing price; the retail price is only substituted when
// the manufacturing price is unset and the fallback is enabled.
func sellPrice(s *supply.Supply, retailFallback bool) (price decimal.Decimal, fellBack bool) {
	if s.HasManufacturePrice() {
		return s.ManufacturePrice, false
	}
	if retailFallback && s.RetailPrice.IsPositive() {
		return s.RetailPrice, true
	}
	return s.ManufacturePrice, false
}

// priceFrame builds the line item for a frame supply. The billed linear
// meters are per unit of order, so the order quantity multiplies in here.
func priceFrame(s *supply.Supply, g Geometry, orderQty int, term supply.PaymentTerm, retailFallback bool) LineItem {
	unitCost := s.UnitCost(term)
	unitSell, fellBack := sellPrice(s, retailFallback)
	qty := decimal.NewFromInt(int64(orderQty))

	return LineItem{
		SupplyID:       s.ID,
		Description:    s.Description,
		Category:       s.Category,
		Unit:           s.Unit(),
		Quantity:       g.BilledLinearMeters,
		UnitCost:       unitCost,
		UnitSellPrice:  unitSell,
		CostSubtotal:   g.BilledLinearMeters.Mul(unitCost).Mul(qty),
		SellSubtotal:   g.BilledLinearMeters.Mul(unitSell).Mul(qty),
		RetailFallback: fellBack,
	}
}

// priceArea builds the line item for an area-billed supply (glass, backing,
// paper, mat board). The order quantity is folded into the billed area.
func priceArea(s *supply.Supply, g Geometry, orderQty int, term supply.PaymentTerm, retailFallback bool) LineItem {
	unitCost := s.UnitCost(term)
	unitSell, fellBack := sellPrice(s, retailFallback)
	billedArea := g.AreaM2.Mul(decimal.NewFromInt(int64(orderQty)))

	return LineItem{
		SupplyID:       s.ID,
		Description:    s.Description,
		Category:       s.Category,
		Unit:           s.Unit(),
		Quantity:       billedArea,
		UnitCost:       unitCost,
		UnitSellPrice:  unitSell,
		CostSubtotal:   billedArea.Mul(unitCost),
		SellSubtotal:   billedArea.Mul(unitSell),
		RetailFallback: fellBack,
	}
}

// priceAccessory builds the line item for a per-piece supply
func priceAccessory(s *supply.Supply, orderQty int, term supply.PaymentTerm, retailFallback bool) LineItem {
	unitCost := s.UnitCost(term)
	unitSell, fellBack := sellPrice(s, retailFallback)
	qty := decimal.NewFromInt(int64(orderQty))

	return LineItem{
		SupplyID:       s.ID,
		Description:    s.Description,
		Category:       s.Category,
		Unit:           s.Unit(),
		Quantity:       qty,
		UnitCost:       unitCost,
		UnitSellPrice:  unitSell,
		CostSubtotal:   qty.Mul(unitCost),
		SellSubtotal:   qty.Mul(unitSell),
		RetailFallback: fellBack,
	}
}
