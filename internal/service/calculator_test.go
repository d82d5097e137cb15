package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals(t *testing.T) {
	items := []LineInput{
		{ProductName: "Widget", Quantity: 2, UnitPrice: dec("50000")},
		{ProductName: "Gadget", Quantity: 1, UnitPrice: dec("100000")},
	}

	totals, err := CalculateTotals(items, dec("0.11"))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("200000")), totals.Subtotal.String())
	assert.True(t, totals.TaxAmount.Equal(dec("22000")), totals.TaxAmount.String())
	assert.True(t, totals.Total.Equal(dec("222000")), totals.Total.String())
	require.Len(t, totals.LineTotals, 2)
	assert.True(t, totals.LineTotals[0].Equal(dec("100000")))
	assert.True(t, totals.LineTotals[1].Equal(dec("100000")))
}

func TestCalculateTotalsProperties(t *testing.T) {
	cases := []struct {
		name  string
		items []LineInput
		rate  string
	}{
		{"single line no tax", []LineInput{{"Kopi", 3, dec("12500")}}, "0"},
		{"fractional price", []LineInput{{"Gula", 7, dec("1234.56")}, {"Teh", 1, dec("0.01")}}, "0.11"},
		{"free item", []LineInput{{"Bonus", 5, dec("0")}, {"Roti", 2, dec("8000")}}, "0.1"},
		{"full rate", []LineInput{{"Jasa", 1, dec("999999.99")}}, "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rate := dec(tc.rate)
			totals, err := CalculateTotals(tc.items, rate)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, it := range tc.items {
				sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
			}
			assert.True(t, totals.Subtotal.Equal(sum))
			assert.True(t, totals.TaxAmount.Equal(sum.Mul(rate)))
			assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.TaxAmount)))
		})
	}
}

func TestCalculateTotalsValidation(t *testing.T) {
	cases := []struct {
		name  string
		items []LineInput
		rate  string
	}{
		{"empty list", nil, "0.11"},
		{"zero quantity", []LineInput{{"Widget", 0, dec("1000")}}, "0.11"},
		{"negative price", []LineInput{{"Widget", 1, dec("-1")}}, "0.11"},
		{"blank name", []LineInput{{"  ", 1, dec("1000")}}, "0.11"},
		{"rate above one", []LineInput{{"Widget", 1, dec("1000")}}, "1.5"},
		{"negative rate", []LineInput{{"Widget", 1, dec("1000")}}, "-0.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateTotals(tc.items, dec(tc.rate))
			require.Error(t, err)
			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}
