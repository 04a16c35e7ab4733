package domain

import "github.com/storefront-go/storefront/internal/pricing"

// NoBrand is the placeholder used for catalog records published without a brand.
const NoBrand = "No Brand"

// Product is a catalog item as published by the remote catalog API.
// JSON tags follow the upstream schema (camelCase). A Product is treated as
// immutable once it has passed the catalog boundary.
type Product struct {
	ID                 int64    `json:"id" validate:"required"`
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price" validate:"gte=0"`
	DiscountPercentage float64  `json:"discountPercentage" validate:"gte=0,lte=100"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock" validate:"gte=0"`
	Brand              string   `json:"brand"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// Normalize applies schema fallbacks to a freshly decoded record.
func (p *Product) Normalize() {
	if p.Brand == "" {
		p.Brand = NoBrand
	}
}

// PriceWithDiscount returns the price after the discount percentage is
// applied, before tax. The value is derived, never stored.
func (p Product) PriceWithDiscount() float64 {
	return p.Price - pricing.Discount(p.Price, p.DiscountPercentage)
}
