package domain

import "github.com/shopspring/decimal"

// FormatRM renders an amount the way bills and reports print it, e.g. RM250.00.
func FormatRM(amount decimal.Decimal) string {
	return "RM" + amount.StringFixed(2)
}
