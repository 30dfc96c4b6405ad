// internal/receipt/currency.go
package receipt

import (
	"github.com/shopspring/decimal"
)

// FormatCurrency renders a peso amount with exactly two decimal places.
// Record arithmetic stays float64; only the displayed value is rounded, and
// the rounding goes through decimal so 0.1-style float artifacts never reach
// a printed receipt.
func FormatCurrency(amount float64) string {
	return "₱" + decimal.NewFromFloat(amount).StringFixed(2)
}
