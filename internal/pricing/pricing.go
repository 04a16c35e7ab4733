// Package pricing holds the storefront's two pricing rules: percentage
// discounts and the two-tier sales tax.
package pricing

import "strings"

// Tax rates by category tier.
const (
	// GroceriesTaxRate applies to the "groceries" category.
	GroceriesTaxRate = 0.03
	// StandardTaxRate applies to every other category.
	StandardTaxRate = 0.0475
)

const groceriesCategory = "groceries"

// Discount returns the discount amount for the given price and percentage.
// Inputs are not validated; out-of-range values propagate arithmetically and
// are the caller's responsibility.
func Discount(price, discountPercentage float64) float64 {
	return price * discountPercentage / 100
}

// Tax returns the tax amount for a price in the given category. Groceries
// (compared case-insensitively) get the reduced rate; every other category
// silently receives the standard rate.
func Tax(price float64, category string) float64 {
	if strings.EqualFold(category, groceriesCategory) {
		return price * GroceriesTaxRate
	}
	return price * StandardTaxRate
}
