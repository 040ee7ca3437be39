package models

import (
	"github.com/shopspring/decimal"
)

// Amount converts a raw snapshot amount to a decimal.
func Amount(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// FormatUSD renders an amount with two decimals and a dollar sign: $150.00,
// $0.00, -$200.00. No thousands separators are inserted.
func FormatUSD(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	if rounded.IsNegative() {
		return "-$" + rounded.Abs().StringFixed(2)
	}
	return "$" + rounded.StringFixed(2)
}
