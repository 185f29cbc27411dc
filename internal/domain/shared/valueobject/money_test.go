package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money successfully", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), THB)

		require.NoError(t, err)
		assert.Equal(t, THB, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")

		require.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("45.50", THB)

		require.NoError(t, err)
		assert.Equal(t, "45.50 THB", m.String())

		_, err = NewMoneyFromString("not-a-number", THB)
		require.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds matching currencies", func(t *testing.T) {
		sum, err := NewMoneyTHBFromFloat(10.50).Add(NewMoneyTHBFromFloat(4.25))

		require.NoError(t, err)
		assert.True(t, sum.Equals(NewMoneyTHBFromFloat(14.75)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(1), USD)
		require.NoError(t, err)

		_, err = NewMoneyTHBFromFloat(10).Add(usd)
		require.Error(t, err)
	})
}

func TestMoney_ApplyDiscount(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		discount int64
		want     string
	}{
		{"ten percent off", 100.00, 10, "90.00"},
		{"no discount", 100.00, 0, "100.00"},
		{"full discount", 100.00, 100, "0.00"},
		{"fractional result", 45.50, 5, "43.23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMoneyTHBFromFloat(tt.amount).
				ApplyDiscount(decimal.NewFromInt(tt.discount)).
				Round(2)

			assert.Equal(t, tt.want, got.Amount().StringFixed(2))
		})
	}
}

func TestMoney_MultiplyByInt(t *testing.T) {
	got := NewMoneyTHBFromFloat(45.50).MultiplyByInt(4)

	assert.True(t, got.Equals(NewMoneyTHBFromFloat(182.00)))
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyTHBFromFloat(10)
	b := NewMoneyTHBFromFloat(20)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	assert.True(t, ZeroTHB().IsZero())
	assert.True(t, NewMoneyTHBFromFloat(-1).IsNegative())
	assert.False(t, a.Equals(b))
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyTHBFromFloat(99.95)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.95","currency":"THB"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string value with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("123.45"))

		assert.Equal(t, DefaultCurrency, m.Currency())
		assert.Equal(t, "123.45", m.Amount().StringFixed(2))
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))

		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		var m Money
		require.Error(t, m.Scan(true))
	})
}
