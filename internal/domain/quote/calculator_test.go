package quote

import (
	"testing"

	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStoreID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func newTestSupply(t *testing.T, code string, category supply.Category, cost, manufacture string) *supply.Supply {
	t.Helper()
	s, err := supply.NewSupply(testStoreID, code, code+" test supply", category)
	require.NoError(t, err)
	s.SetCostSchedule(supply.CostSchedule{
		CostCash:   dec(cost),
		CostNet30:  dec(cost),
		CostNet60:  dec(cost),
		CostNet90:  dec(cost),
		CostNet120: dec(cost),
		CostNet150: dec(cost),
	})
	require.NoError(t, s.SetPrices(dec(manufacture), decimal.Zero))
	return s
}

func newTestFrame(t *testing.T, cost, manufacture, profileWidth string) *supply.Supply {
	t.Helper()
	s := newTestSupply(t, "FRM-001", supply.CategoryFrame, cost, manufacture)
	require.NoError(t, s.SetFrameProfile(dec(profileWidth), dec("270")))
	return s
}

func TestCalculateFrameOnly(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	req := Request{HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1, FrameID: &frame.ID}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
	require.NoError(t, err)

	assertDecimal(t, "280", result.PerimeterCm)
	assert.Equal(t, 2, result.BarsNeeded)
	assertDecimal(t, "260", result.LeftoverCm)
	assertDecimal(t, "3.04", result.BilledLinearMeters)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.Equal(t, supply.CategoryFrame, item.Category)
	assert.Equal(t, supply.UnitLinearMeter, item.Unit)
	assertDecimal(t, "3.04", item.Quantity)
	assertDecimal(t, "152", item.CostSubtotal)
	assertDecimal(t, "456", item.SellSubtotal)

	// 24cm of cut-loss at 50/m, charged once on top of the line items
	assertDecimal(t, "12", result.WasteCost)
	assertDecimal(t, "164", result.CostTotal)
	assertDecimal(t, "456", result.SellTotal)
	assertDecimal(t, "2.7805", result.Markup)
	assertDecimal(t, "64.04", result.MarginPercent)
	assertDecimal(t, "456", result.FinalValue)
}

func TestCalculateShortLeftoverBilled(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	req := Request{HeightCm: dec("50"), WidthCm: dec("70"), Quantity: 1, FrameID: &frame.ID}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
	require.NoError(t, err)

	assert.Equal(t, 1, result.BarsNeeded)
	assertDecimal(t, "30", result.LeftoverCm)
	assertDecimal(t, "2.94", result.BilledLinearMeters)
	// (24 + 30) cm of waste at 50/m
	assertDecimal(t, "27", result.WasteCost)
}

func TestCalculateGlassOnly(t *testing.T) {
	glass := newTestSupply(t, "VID-001", supply.CategoryGlass, "45", "112.50")
	req := Request{HeightCm: dec("40"), WidthCm: dec("60"), Quantity: 1, UseGlass: true, GlassID: &glass.ID}

	result, err := NewCalculator().Calculate(req, Selection{Glass: glass})
	require.NoError(t, err)

	assertDecimal(t, "0.24", result.AreaM2)
	assert.Zero(t, result.BarsNeeded)
	assert.True(t, result.WasteCost.IsZero())

	require.Len(t, result.Items, 1)
	assertDecimal(t, "10.8", result.Items[0].CostSubtotal)
	assertDecimal(t, "27", result.Items[0].SellSubtotal)
	assertDecimal(t, "10.8", result.CostTotal)
	assertDecimal(t, "27", result.SellTotal)
	assertDecimal(t, "2.5", result.Markup)
	assertDecimal(t, "60", result.MarginPercent)
}

func TestCalculateQuantityFoldedIntoAreaItems(t *testing.T) {
	glass := newTestSupply(t, "VID-001", supply.CategoryGlass, "45", "112.50")
	req := Request{HeightCm: dec("40"), WidthCm: dec("60"), Quantity: 3, UseGlass: true, GlassID: &glass.ID}

	result, err := NewCalculator().Calculate(req, Selection{Glass: glass})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assertDecimal(t, "0.72", result.Items[0].Quantity)
	assertDecimal(t, "32.4", result.Items[0].CostSubtotal)
}

func TestCalculateFrameQuantityMultipliesExplicitly(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	req := Request{HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 2, FrameID: &frame.ID}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	// billed meters stay per unit of order, the subtotal doubles
	assertDecimal(t, "3.04", result.Items[0].Quantity)
	assertDecimal(t, "304", result.Items[0].CostSubtotal)
	assertDecimal(t, "912", result.Items[0].SellSubtotal)
}

func TestCalculateAccessories(t *testing.T) {
	hook := newTestSupply(t, "ACC-001", supply.CategoryAccessory, "2", "5")
	wire := newTestSupply(t, "ACC-002", supply.CategoryAccessory, "1.5", "4")
	req := Request{
		HeightCm: dec("40"), WidthCm: dec("60"), Quantity: 2,
		UseAccessories: true, AccessoryIDs: []uuid.UUID{hook.ID, wire.ID},
	}

	result, err := NewCalculator().Calculate(req, Selection{Accessories: []*supply.Supply{hook, wire}})
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assertDecimal(t, "2", result.Items[0].Quantity)
	assertDecimal(t, "4", result.Items[0].CostSubtotal)
	assertDecimal(t, "10", result.Items[0].SellSubtotal)
	assertDecimal(t, "3", result.Items[1].CostSubtotal)
	assertDecimal(t, "8", result.Items[1].SellSubtotal)
}

func TestCalculateFullJob(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	glass := newTestSupply(t, "VID-001", supply.CategoryGlass, "45", "112.50")
	backing := newTestSupply(t, "MDF-001", supply.CategoryBacking, "20", "55")
	req := Request{
		HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1,
		FrameID:  &frame.ID,
		UseGlass: true, GlassID: &glass.ID,
		UseBacking: true, BackingID: &backing.ID,
	}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame, Glass: glass, Backing: backing})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	// frame 152 + glass 0.48*45 + backing 0.48*20 + waste 12
	assertDecimal(t, "195.2", result.CostTotal)
	// frame 456 + glass 0.48*112.50 + backing 0.48*55
	assertDecimal(t, "536.4", result.SellTotal)
}

func TestCalculateDiscountPercent(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	req := Request{
		HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1,
		FrameID:         &frame.ID,
		DiscountPercent: dec("10"),
	}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
	require.NoError(t, err)

	assertDecimal(t, "456", result.SellTotal)
	assertDecimal(t, "10", result.DiscountPercent)
	assertDecimal(t, "45.6", result.DiscountAmount)
	assertDecimal(t, "410.4", result.FinalValue)
}

func TestCalculateDiscountFixedBackfillsPercent(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	req := Request{
		HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1,
		FrameID:        &frame.ID,
		DiscountAmount: dec("45.60"),
	}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
	require.NoError(t, err)

	assertDecimal(t, "10", result.DiscountPercent)
	assertDecimal(t, "45.6", result.DiscountAmount)
	assertDecimal(t, "410.4", result.FinalValue)
}

func TestCalculatePercentWinsOverFixed(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	req := Request{
		HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1,
		FrameID:         &frame.ID,
		DiscountPercent: dec("10"),
		DiscountAmount:  dec("99"),
	}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
	require.NoError(t, err)

	assertDecimal(t, "45.6", result.DiscountAmount)
}

func TestCalculateSurcharge(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	req := Request{
		HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1,
		FrameID:          &frame.ID,
		SurchargePercent: dec("5"),
	}

	result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
	require.NoError(t, err)

	assertDecimal(t, "22.8", result.SurchargeAmount)
	assertDecimal(t, "478.8", result.FinalValue)
}

func TestCalculateEmptySelection(t *testing.T) {
	req := Request{HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1}

	result, err := NewCalculator().Calculate(req, Selection{})
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.True(t, result.CostTotal.IsZero())
	assert.True(t, result.SellTotal.IsZero())
	assert.True(t, result.MarginPercent.IsZero())
	assert.True(t, result.FinalValue.IsZero())
	assertDecimal(t, "3", result.Markup)
	// geometry is still reported for the caller
	assertDecimal(t, "0.48", result.AreaM2)
	assertDecimal(t, "280", result.PerimeterCm)
}

func TestCalculateInvalidDimensions(t *testing.T) {
	req := Request{HeightCm: decimal.Zero, WidthCm: dec("80"), Quantity: 1}

	_, err := NewCalculator().Calculate(req, Selection{})
	assert.ErrorIs(t, err, shared.ErrInvalidDimensions)
}

func TestCalculateRetailFallback(t *testing.T) {
	glass := newTestSupply(t, "VID-001", supply.CategoryGlass, "45", "0")
	require.NoError(t, glass.SetPrices(decimal.Zero, dec("100")))
	req := Request{HeightCm: dec("40"), WidthCm: dec("60"), Quantity: 1, UseGlass: true, GlassID: &glass.ID}

	t.Run("enabled", func(t *testing.T) {
		result, err := NewCalculator(WithRetailPriceFallback(true)).Calculate(req, Selection{Glass: glass})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.True(t, result.Items[0].RetailFallback)
		assertDecimal(t, "24", result.Items[0].SellSubtotal)
	})

	t.Run("disabled", func(t *testing.T) {
		result, err := NewCalculator(WithRetailPriceFallback(false)).Calculate(req, Selection{Glass: glass})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.False(t, result.Items[0].RetailFallback)
		assert.True(t, result.Items[0].SellSubtotal.IsZero())
	})
}

func TestCalculatePaymentTermSelectsTier(t *testing.T) {
	glass := newTestSupply(t, "VID-001", supply.CategoryGlass, "45", "112.50")
	glass.SetCostSchedule(supply.CostSchedule{
		CostCash:   dec("40"),
		CostNet120: dec("45"),
	})
	req := Request{
		HeightCm: dec("40"), WidthCm: dec("60"), Quantity: 1,
		UseGlass: true, GlassID: &glass.ID,
		PaymentTerm: supply.TermCash,
	}

	result, err := NewCalculator().Calculate(req, Selection{Glass: glass})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assertDecimal(t, "40", result.Items[0].UnitCost)

	t.Run("unknown term falls back to default tier", func(t *testing.T) {
		req.PaymentTerm = "net999"
		result, err := NewCalculator().Calculate(req, Selection{Glass: glass})
		require.NoError(t, err)
		assertDecimal(t, "45", result.Items[0].UnitCost)
	})
}

func TestCalculateZeroCostSupplyAccepted(t *testing.T) {
	// permissive by design: a supply with no cost prices as a no-op
	glass := newTestSupply(t, "VID-001", supply.CategoryGlass, "0", "112.50")
	req := Request{HeightCm: dec("40"), WidthCm: dec("60"), Quantity: 1, UseGlass: true, GlassID: &glass.ID}

	result, err := NewCalculator().Calculate(req, Selection{Glass: glass})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].CostSubtotal.IsZero())
	assertDecimal(t, "27", result.Items[0].SellSubtotal)
}

func TestCalculateIdempotent(t *testing.T) {
	frame := newTestFrame(t, "50", "150", "3")
	glass := newTestSupply(t, "VID-001", supply.CategoryGlass, "45", "112.50")
	req := Request{
		HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 2,
		FrameID:  &frame.ID,
		UseGlass: true, GlassID: &glass.ID,
		DiscountPercent: dec("10"),
	}
	calc := NewCalculator()
	sel := Selection{Frame: frame, Glass: glass}

	first, err := calc.Calculate(req, sel)
	require.NoError(t, err)
	second, err := calc.Calculate(req, sel)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateMarginBounds(t *testing.T) {
	// margin stays in [0,100] whenever sell >= cost >= 0
	cases := []struct{ cost, sell string }{
		{"50", "150"}, {"50", "50"}, {"0.01", "1000"}, {"100", "100.01"},
	}
	for _, c := range cases {
		frame := newTestFrame(t, c.cost, c.sell, "0")
		req := Request{HeightCm: dec("60"), WidthCm: dec("80"), Quantity: 1, FrameID: &frame.ID}

		result, err := NewCalculator().Calculate(req, Selection{Frame: frame})
		require.NoError(t, err)
		assert.False(t, result.MarginPercent.IsNegative(), "cost=%s sell=%s", c.cost, c.sell)
		assert.True(t, result.MarginPercent.LessThanOrEqual(dec("100")), "cost=%s sell=%s", c.cost, c.sell)
	}
}
