package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), BRL)
		require.NoError(t, err)
		assert.Equal(t, BRL, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyBRL(t *testing.T) {
	m := NewMoneyBRL(decimal.NewFromFloat(50.00))
	assert.Equal(t, BRL, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestZeroBRL(t *testing.T) {
	m := ZeroBRL()
	assert.True(t, m.IsZero())
	assert.Equal(t, BRL, m.Currency())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyBRLFromFloat(100)
		b := NewMoneyBRLFromFloat(50.25)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(150.25)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyBRLFromFloat(100)
		b, _ := NewMoneyFromFloat(50, USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyBRLFromFloat(100)
	b := NewMoneyBRLFromFloat(30)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))

	t.Run("can go negative", func(t *testing.T) {
		diff, err := b.Subtract(a)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
	})
}

func TestMoneyMustAddPanicsOnCurrencyMismatch(t *testing.T) {
	a := NewMoneyBRLFromFloat(100)
	b, _ := NewMoneyFromFloat(50, EUR)
	assert.Panics(t, func() { a.MustAdd(b) })
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoneyBRLFromFloat(10.50)
	result := m.Multiply(decimal.NewFromInt(3))
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(31.50)))
}

func TestMoneyDivide(t *testing.T) {
	m := NewMoneyBRLFromFloat(100)

	result, err := m.Divide(decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(25)))

	_, err = m.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoneyCalculatePercentage(t *testing.T) {
	m := NewMoneyBRLFromFloat(456)
	discount := m.CalculatePercentage(decimal.NewFromInt(10))
	assert.True(t, discount.Amount().Equal(decimal.NewFromFloat(45.60)), "got %s", discount.Amount())
}

func TestMoneyApplyDiscount(t *testing.T) {
	m := NewMoneyBRLFromFloat(456)
	discounted := m.ApplyDiscount(decimal.NewFromInt(10))
	assert.True(t, discounted.Amount().Equal(decimal.NewFromFloat(410.40)), "got %s", discounted.Amount())
}

func TestMoneyRound(t *testing.T) {
	m := NewMoneyBRLFromFloat(10.456)
	assert.True(t, m.Round(2).Amount().Equal(decimal.NewFromFloat(10.46)))
}

func TestMoneyEquals(t *testing.T) {
	a := NewMoneyBRLFromFloat(100)
	b := NewMoneyBRLFromFloat(100)
	c, _ := NewMoneyFromFloat(100, USD)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyBRLFromFloat(1234.5)
	assert.Equal(t, "1234.50 BRL", m.String())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyBRLFromFloat(99.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.99","currency":"BRL"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.42"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(42.42)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
