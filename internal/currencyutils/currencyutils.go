// Package currencyutils parses the loosely formatted amounts found in
// exported transaction files.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbols = regexp.MustCompile(`[€$£¥₣₹₽₩฿₪\s]|CHF|USD|EUR|GBP`)

// ParseAmount parses amounts like "1,234.56", "1.234,56", "CHF 1'234.50",
// "(12.00)" or "-$5". An empty string is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amountStr)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	amount, err := decimal.NewFromString(StandardizeAmount(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// StandardizeAmount strips currency markers and thousands separators and
// leaves a dot as the decimal separator.
func StandardizeAmount(amountStr string) string {
	s := symbols.ReplaceAllString(amountStr, "")
	s = strings.ReplaceAll(s, "'", "")

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1 && len(s)-lastDot == 4:
		// 1.234.567
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}
