package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":          "Rp 0",
		"999":        "Rp 999",
		"1234567":    "Rp 1,234,567",
		"222000":     "Rp 222,000",
		"1234567.5":  "Rp 1,234,568",
		"1234567.49": "Rp 1,234,567",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(decimal.RequireFromString(in)), in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "11", FormatPercent(decimal.RequireFromString("0.11")))
	assert.Equal(t, "0", FormatPercent(decimal.Zero))
	assert.Equal(t, "100", FormatPercent(decimal.NewFromInt(1)))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-10-16", FormatDate(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}
