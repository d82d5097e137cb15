package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineInput is one line to be priced.
type LineInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Totals is the priced result of a set of lines. Values are exact; rounding
// happens only when they are presented.
type Totals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
}

var maxTaxRate = decimal.NewFromInt(1)

// CalculateTotals prices items at the given tax rate fraction (0.11 = 11%).
func CalculateTotals(items []LineInput, taxRate decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, newValidationError("items", "must contain at least 1 item(s)")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(maxTaxRate) {
		return Totals{}, newValidationError("tax_rate", "must be between 0 and 1")
	}

	totals := Totals{LineTotals: make([]decimal.Decimal, len(items)), Subtotal: decimal.Zero}
	for i, item := range items {
		if strings.TrimSpace(item.ProductName) == "" {
			return Totals{}, newValidationError("items", "items[%d].product_name is required", i)
		}
		if item.Quantity < 1 {
			return Totals{}, newValidationError("items", "items[%d].quantity must be at least 1", i)
		}
		if item.UnitPrice.IsNegative() {
			return Totals{}, newValidationError("items", "items[%d].unit_price must not be negative", i)
		}
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totals.LineTotals[i] = line
		totals.Subtotal = totals.Subtotal.Add(line)
	}

	totals.TaxAmount = totals.Subtotal.Mul(taxRate)
	totals.Total = totals.Subtotal.Add(totals.TaxAmount)
	return totals, nil
}
