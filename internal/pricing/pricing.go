// Package pricing computes the quoted price of a project from its base cost.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"mobiz/internal/core"
)

var hundred = decimal.NewFromInt(100)

// Compute returns base + base*profitPercent/100 + base*taxPercent/100.
// Negative inputs are applied as given.
func Compute(base, profitPercent, taxPercent decimal.Decimal) decimal.Decimal {
	profit := base.Mul(profitPercent).Div(hundred)
	tax := base.Mul(taxPercent).Div(hundred)
	return base.Add(profit).Add(tax)
}

// Price parses the three inputs and computes the final price. If any input
// is not a number it returns an *core.InvalidInputError and computes nothing.
func Price(base, profitPercent, taxPercent string) (decimal.Decimal, error) {
	inputs := []struct {
		name  string
		value string
	}{
		{"base cost", base},
		{"profit percent", profitPercent},
		{"tax percent", taxPercent},
	}

	vals := make([]decimal.Decimal, len(inputs))
	for i, in := range inputs {
		v, err := core.ParseNumber(in.name, in.value)
		if err != nil {
			var pe *core.ParseError
			if errors.As(err, &pe) {
				return decimal.Zero, &core.InvalidInputError{Input: in.name, Value: in.value}
			}
			return decimal.Zero, err
		}
		vals[i] = v
	}
	return Compute(vals[0], vals[1], vals[2]), nil
}
