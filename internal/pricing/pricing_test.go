package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"mobiz/internal/core"
)

func TestPrice(t *testing.T) {
	cases := []struct {
		base, profit, tax string
		want              string
	}{
		{"100", "20", "5", "125"},
		{"100", "0", "0", "100"},
		{"80.50", "10", "7.5", "94.5875"},
		{"0", "50", "50", "0"},
		{"-100", "20", "5", "-125"},
		{"100", "-20", "0", "80"},
		{" 100 ", "20", "5", "125"},
	}
	for _, tc := range cases {
		got, err := Price(tc.base, tc.profit, tc.tax)
		if err != nil {
			t.Fatalf("Price(%q,%q,%q): unexpected error %v", tc.base, tc.profit, tc.tax, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("Price(%q,%q,%q)=%s want %s", tc.base, tc.profit, tc.tax, got, tc.want)
		}
	}
}

func TestPriceInvalidInput(t *testing.T) {
	cases := []struct {
		base, profit, tax string
		input             string
	}{
		{"abc", "20", "5", "base cost"},
		{"100", "", "5", "profit percent"},
		{"100", "20", "5%", "tax percent"},
	}
	for _, tc := range cases {
		got, err := Price(tc.base, tc.profit, tc.tax)
		var ie *core.InvalidInputError
		if !errors.As(err, &ie) {
			t.Fatalf("expected InvalidInputError, got %v", err)
		}
		if ie.Input != tc.input || !errors.Is(err, core.ErrInvalidInput) {
			t.Fatalf("unexpected error %+v", ie)
		}
		if !got.IsZero() {
			t.Fatalf("no partial result expected, got %s", got)
		}
	}
}
