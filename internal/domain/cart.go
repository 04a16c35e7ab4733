package domain

import "github.com/storefront-go/storefront/internal/pricing"

// CartLine is one (product, quantity) entry in a cart. The product is
// embedded by value, so cart contents survive the catalog entry changing
// or disappearing after the line was added.
type CartLine struct {
	ProductSnapshot Product `json:"product_snapshot"`
	Quantity        int     `json:"quantity"`
}

// ItemCount returns the sum of all line quantities.
func ItemCount(lines []CartLine) int {
	var count int
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Subtotal sums the discounted price times quantity over all lines.
func Subtotal(lines []CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.ProductSnapshot.PriceWithDiscount() * float64(line.Quantity)
	}
	return sum
}

// TotalTax sums the per-line tax over all lines. Tax is computed on the
// discounted price, not the original price.
func TotalTax(lines []CartLine) float64 {
	var sum float64
	for _, line := range lines {
		discounted := line.ProductSnapshot.PriceWithDiscount()
		sum += pricing.Tax(discounted, line.ProductSnapshot.Category) * float64(line.Quantity)
	}
	return sum
}

// Total returns Subtotal + TotalTax. It is computed as exactly that sum, so
// the identity holds without floating-point tolerance.
func Total(lines []CartLine) float64 {
	return Subtotal(lines) + TotalTax(lines)
}

// TotalSavings sums the discount amount times quantity over all lines,
// computed from the original undiscounted price and percentage.
func TotalSavings(lines []CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += pricing.Discount(line.ProductSnapshot.Price, line.ProductSnapshot.DiscountPercentage) * float64(line.Quantity)
	}
	return sum
}
