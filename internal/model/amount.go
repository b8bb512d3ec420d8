package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount leniently converts a cell value to a decimal. Currency
// symbols, thousands separators and surrounding whitespace are stripped;
// anything that still fails to parse coerces to zero so corrupt or blank
// cells contribute nothing to sums.
func ParseAmount(s string) decimal.Decimal {
	d, ok := ParseAmountStrict(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

// ParseAmountStrict is ParseAmount without the zero coercion; the second
// return reports whether the cell held a number at all.
func ParseAmountStrict(s string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(s)
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimPrefix(v, "£")
	v = strings.TrimSuffix(v, "%")
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
