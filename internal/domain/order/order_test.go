package order

import (
	"testing"

	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func newTestOrder(t *testing.T) *FrameOrder {
	t.Helper()
	req := quote.Request{
		HeightCm: decimal.NewFromInt(60),
		WidthCm:  decimal.NewFromInt(80),
		Quantity: 1,
	}
	result := quote.Result{
		AreaM2:      decimal.NewFromFloat(0.48),
		PerimeterCm: decimal.NewFromInt(280),
		Items: []quote.LineItem{{
			SupplyID:     uuid.New(),
			Description:  "Wooden molding 3cm",
			Category:     supply.CategoryFrame,
			Unit:         supply.UnitLinearMeter,
			Quantity:     decimal.NewFromFloat(3.04),
			CostSubtotal: decimal.NewFromInt(152),
			SellSubtotal: decimal.NewFromInt(456),
		}},
		CostTotal:  decimal.NewFromInt(164),
		SellTotal:  decimal.NewFromInt(456),
		FinalValue: decimal.NewFromInt(456),
	}
	o, err := NewFrameOrder(storeID, 42, "Maria Souza", req, result)
	require.NoError(t, err)
	return o
}

func TestNewFrameOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, int64(42), o.Number)
	assert.Equal(t, StatusDraft, o.Status)
	assert.Equal(t, supply.DefaultPaymentTerm, o.PaymentTerm)
	assert.True(t, decimal.NewFromInt(456).Equal(o.FinalValue))

	items, err := o.LineItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Wooden molding 3cm", items[0].Description)
	assert.True(t, decimal.NewFromFloat(3.04).Equal(items[0].Quantity))
}

func TestNewFrameOrderValidation(t *testing.T) {
	req := quote.Request{HeightCm: decimal.NewFromInt(60), WidthCm: decimal.NewFromInt(80), Quantity: 1}

	_, err := NewFrameOrder(storeID, 0, "Maria Souza", req, quote.Result{})
	assert.Error(t, err)

	_, err = NewFrameOrder(storeID, 1, "  ", req, quote.Result{})
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	t.Run("draft to production via approval", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Approve())
		assert.Equal(t, StatusApproved, o.Status)

		require.NoError(t, o.SendToProduction())
		assert.Equal(t, StatusInProduction, o.Status)
	})

	t.Run("draft cannot skip approval", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.SendToProduction())
	})

	t.Run("production is terminal", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Approve())
		require.NoError(t, o.SendToProduction())

		assert.Error(t, o.Cancel())
		assert.Error(t, o.Approve())
	})

	t.Run("cancel from draft and approved", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCancelled, o.Status)

		o2 := newTestOrder(t)
		require.NoError(t, o2.Approve())
		require.NoError(t, o2.Cancel())
	})
}

func TestUpdateCustomer(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.UpdateCustomer("João Lima", "pickup on friday"))
	assert.Equal(t, "João Lima", o.CustomerName)
	assert.Equal(t, "pickup on friday", o.Notes)

	assert.Error(t, o.UpdateCustomer("", ""))

	require.NoError(t, o.Approve())
	assert.Error(t, o.UpdateCustomer("Ana", ""), "non-draft orders are frozen")
}
