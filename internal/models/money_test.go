package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Plain integer", "500", "500", false},
		{"Decimal", "499.50", "499.5", false},
		{"Thousands separator", "1,500", "1500", false},
		{"Rupee prefix", "Rs. 1,500", "1500", false},
		{"Rupee symbol", "₹2500", "2500", false},
		{"INR prefix", "INR 300", "300", false},
		{"Surrounding whitespace", "  750  ", "750", false},
		{"Zero", "0", "0", false},
		{"Negative", "-100", "", true},
		{"Empty", "", "", true},
		{"Only currency marker", "Rs.", "", true},
		{"Words", "five hundred", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseAmount(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			expected, _ := decimal.NewFromString(tc.expected)
			assert.True(t, amount.Equal(expected), "got %s, want %s", amount, expected)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	amount := decimal.NewFromFloat(1500.5)
	assert.Equal(t, "1500.50", FormatAmount(amount))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
