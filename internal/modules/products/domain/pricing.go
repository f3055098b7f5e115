package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// Sizes offered by the product form.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// Genders offered by the product form.
var Genders = []string{"Male", "Female", "Unisex"}

// DiscountTypes are the named promotions a discount can be attached to.
var DiscountTypes = []string{
	"black-friday", "xmas-slash", "new-year-deal", "easter-special", "back-to-school",
	"summer-sale", "winter-clearance", "cyber-monday", "flash-sale", "loyalty-reward",
	"first-time-user", "regional-holiday", "limited-time", "clearance", "bundle-deal",
	"student-discount", "military-discount", "birthday-special",
}

// SalesPrice applies a percentage discount and rounds to cents.
func SalesPrice(price, discountPercent float64) float64 {
	return round2(price - price*(discountPercent/100))
}

// StockStatus derives the catalog status from the units in stock.
func StockStatus(stock int) string {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

// SKUGenerator produces product SKUs.
type SKUGenerator func() string

// RandomSKU returns "SKU" followed by six random digits in [100000, 999999].
func RandomSKU() string {
	return fmt.Sprintf("SKU%d", 100000+rand.IntN(900000))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
