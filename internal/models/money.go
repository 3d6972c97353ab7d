package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// currency prefixes users habitually type in front of amounts.
var currencyMarkers = []string{"rs.", "rs", "inr", "₹", "$"}

// ParseAmount parses a user-supplied amount string into a decimal.
// It tolerates surrounding whitespace, thousands separators and a leading
// currency marker ("Rs. 1,500" -> 1500).
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, marker := range currencyMarkers {
		s = strings.TrimPrefix(s, marker)
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative: %s", raw)
	}
	return amount, nil
}

// FormatAmount renders a decimal for chat output with two fixed decimals.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
