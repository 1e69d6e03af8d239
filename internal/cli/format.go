// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"github.com/shopspring/decimal"
)

// FormatAmount renders a money value with the currency symbol,
// e.g. 1234.5 -> "€1234.50".
func FormatAmount(v decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "€"
	}
	return currency + v.StringFixed(2)
}

// FormatSigned renders a money value with an explicit sign for
// income/expense display.
func FormatSigned(v decimal.Decimal, negative bool, currency string) string {
	if negative {
		return "-" + FormatAmount(v, currency)
	}
	return "+" + FormatAmount(v, currency)
}

// Clip shortens a string to at most n runes, appending an ellipsis.
func Clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	return string(r[:n-1]) + "…"
}
