package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLine(t *testing.T) {
	lt, err := ComputeLine(Line{UnitPrice: dec("100.00"), Qty: 2, GSTRate: dec("18")})
	require.NoError(t, err)

	assert.True(t, lt.Subtotal.Equal(dec("200.00")), "subtotal = %s", lt.Subtotal)
	assert.True(t, lt.GSTAmount.Equal(dec("36.00")), "gst = %s", lt.GSTAmount)
	assert.True(t, lt.TotalWithGST.Equal(dec("236.00")), "total = %s", lt.TotalWithGST)
}

func TestComputeLine_InvalidRate(t *testing.T) {
	_, err := ComputeLine(Line{UnitPrice: dec("10"), Qty: 1, GSTRate: dec("101")})
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = ComputeLine(Line{UnitPrice: dec("10"), Qty: 1, GSTRate: dec("-0.01")})
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestComputeOrder_CommissionExcludedFromTotal(t *testing.T) {
	lines := []Line{{UnitPrice: dec("100.00"), Qty: 2, GSTRate: dec("18")}}

	got, err := ComputeOrder(lines, dec("5"))
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec("200.00")))
	assert.True(t, got.GSTAmount.Equal(dec("36.00")))
	assert.True(t, got.CommissionAmount.Equal(dec("10.00")), "commission = %s", got.CommissionAmount)
	// Commission is deducted from the seller payout, not charged to the buyer.
	assert.True(t, got.Total.Equal(dec("236.00")), "total = %s", got.Total)
}

func TestComputeOrder_MixedRates(t *testing.T) {
	lines := []Line{
		{UnitPrice: dec("100.00"), Qty: 1, GSTRate: dec("18")},
		{UnitPrice: dec("50.00"), Qty: 2, GSTRate: dec("5")},
		{UnitPrice: dec("10.00"), Qty: 3, GSTRate: dec("0")},
	}

	got, err := ComputeOrder(lines, dec("0"))
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec("230.00")))
	// 18 + 5 + 0, summed per line rather than one rate on the aggregate.
	assert.True(t, got.GSTAmount.Equal(dec("23.00")), "gst = %s", got.GSTAmount)
	assert.True(t, got.Total.Equal(dec("253.00")))
	assert.True(t, got.CommissionAmount.IsZero())
}

func TestComputeOrder_PerLineSumMatchesAggregateForUniformRate(t *testing.T) {
	// When every line shares one rate, summing per-line GST must equal
	// applying the rate to the aggregate subtotal exactly.
	lines := []Line{
		{UnitPrice: dec("33.33"), Qty: 3, GSTRate: dec("18")},
		{UnitPrice: dec("0.01"), Qty: 7, GSTRate: dec("18")},
		{UnitPrice: dec("199.99"), Qty: 2, GSTRate: dec("18")},
	}

	got, err := ComputeOrder(lines, dec("5"))
	require.NoError(t, err)

	aggregate := got.Subtotal.Mul(dec("18")).Div(dec("100"))
	assert.True(t, got.GSTAmount.Equal(aggregate),
		"per-line sum %s != aggregate %s", got.GSTAmount, aggregate)
}

func TestComputeOrder_EmptyLines(t *testing.T) {
	got, err := ComputeOrder(nil, dec("5"))
	require.NoError(t, err)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestComputeOrder_InvalidCommissionRate(t *testing.T) {
	_, err := ComputeOrder(nil, dec("100.01"))
	assert.ErrorIs(t, err, ErrInvalidRate)
}
