package tradejournal

import (
	"strings"

	"github.com/shopspring/decimal"
)

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func normalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// dec converts a request field at the precision it is stored with.
func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(amountScale)
}

func statusName(active bool) string {
	if active {
		return StatusActive
	}
	return StatusDisabled
}
