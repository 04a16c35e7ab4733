package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_BrandFallback(t *testing.T) {
	p := Product{ID: 1, Title: "Generic Soap", Brand: ""}
	p.Normalize()
	assert.Equal(t, NoBrand, p.Brand)
}

func TestNormalize_KeepsExistingBrand(t *testing.T) {
	p := Product{ID: 1, Title: "Phone", Brand: "Apple"}
	p.Normalize()
	assert.Equal(t, "Apple", p.Brand)
}

func TestPriceWithDiscount(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		percent float64
		want    float64
	}{
		{"ten percent off", 100, 10, 90},
		{"no discount", 549, 0, 549},
		{"full discount", 49.99, 100, 0},
		{"fractional", 1249, 17.94, 1024.9494},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, DiscountPercentage: tt.percent}
			assert.InDelta(t, tt.want, p.PriceWithDiscount(), 1e-6)
		})
	}
}

func TestPriceWithDiscount_IsDeterministic(t *testing.T) {
	p := Product{Price: 1549.55, DiscountPercentage: 12.96}
	assert.Equal(t, p.PriceWithDiscount(), p.PriceWithDiscount())
}
