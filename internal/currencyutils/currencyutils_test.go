package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		hasError  bool
	}{
		{"Empty string", "", "0", false},
		{"Simple decimal", "123.45", "123.45", false},
		{"Negative decimal", "-123.45", "-123.45", false},
		{"Integer", "100", "100", false},
		{"Comma decimal separator", "123,45", "123.45", false},
		{"Comma thousands separator", "1,234.56", "1234.56", false},
		{"Comma thousands only", "1,234", "1234", false},
		{"Apostrophe thousands separator", "1'234.56", "1234.56", false},
		{"European format", "1.234,56", "1234.56", false},
		{"European multiple separators", "1.234.567,89", "1234567.89", false},
		{"Dotted thousands", "1.234.567", "1234567", false},
		{"Euro symbol", "€123.45", "123.45", false},
		{"Dollar symbol", "$123.45", "123.45", false},
		{"Negative dollar", "-$5", "-5", false},
		{"Currency code", "CHF 1'234.50", "1234.50", false},
		{"Accounting negative", "(12.00)", "-12", false},
		{"Spaces", "  123.45  ", "123.45", false},
		{"Malformed decimal", "123.45.67", "0", true},
		{"Non-numeric", "abc", "0", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			expected := decimal.RequireFromString(tc.expected)
			assert.True(t, expected.Equal(result), "expected %s but got %s", expected, result)
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123.45", "123.45"},
		{"1,234,567.89", "1234567.89"},
		{"€1.234,56", "1234.56"},
		{"USD 42", "42"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}
