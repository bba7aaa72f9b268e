package repo

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

func TestPriceRangeFrom(t *testing.T) {
	d := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

	tests := []struct {
		name            string
		lowest, highest decimal.NullDecimal
		want            models.PriceRange
	}{
		{"Empty catalog", decimal.NullDecimal{}, decimal.NullDecimal{}, models.PriceRange{}},
		{"Bounds are floored and ceiled", d("19.99"), d("799.01"), models.PriceRange{Min: 19, Max: 800}},
		{"Single price widens by one", d("250"), d("250"), models.PriceRange{Min: 250, Max: 251}},
		{"Fractional single price", d("10.50"), d("10.50"), models.PriceRange{Min: 10, Max: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priceRangeFrom(tt.lowest, tt.highest); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (ProductFilter{Page: 3, Limit: 12}).Offset(); got != 24 {
		t.Errorf("expected 24, got %d", got)
	}
	if got := (ProductFilter{Page: 0, Limit: 12}).Offset(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := (ProductFilter{Page: math.MaxInt/4 + 2, Limit: 12}).Offset(); got != math.MaxInt {
		t.Errorf("expected offset to saturate, got %d", got)
	}
}
