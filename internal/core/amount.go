// Package core provides the ledger domain: record kinds, the stored line
// format and amount parsing.
//
// Amounts are decimal.Decimal values kept at full precision. Rounding to
// two places happens only when a report is rendered.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal amount, ignoring surrounding whitespace.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount(" 100 ")  -> 100, nil
//	ParseAmount("-5")     -> -5, nil (sign is not validated)
//	ParseAmount("abc")    -> 0, *ParseError
func ParseAmount(s string) (decimal.Decimal, error) {
	return parseNumber("amount", s)
}

func parseNumber(field, s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return decimal.Zero, &ParseError{Field: field, Value: s}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, &ParseError{Field: field, Value: s}
	}
	return d, nil
}

// ParseNumber parses a named numeric input such as a percentage.
func ParseNumber(field, s string) (decimal.Decimal, error) {
	return parseNumber(field, s)
}
