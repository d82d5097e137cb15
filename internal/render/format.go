package render

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencyPrefix = "Rp "

var numberPrinter = message.NewPrinter(language.English)

// FormatCurrency rounds to whole rupiah and groups thousands: Rp 1,234,567.
func FormatCurrency(amount decimal.Decimal) string {
	return currencyPrefix + numberPrinter.Sprintf("%d", amount.Round(0).IntPart())
}

// FormatPercent renders a rate fraction as a whole percentage without the sign: 0.11 -> "11".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Round(0).String()
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
