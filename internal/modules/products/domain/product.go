package domain

import (
	"log/slog"
	"strings"
	"time"

	"storeAdmin/internal/shared/normalization"
)

// Product is a catalog entry as served by the backend.
type Product struct {
	ID           string    `json:"id"`
	SKU          string    `json:"skuid"`
	Name         string    `json:"product_name"`
	Description  string    `json:"product_description"`
	Price        float64   `json:"product_price"`
	SalesPrice   float64   `json:"sales_price"`
	Discount     float64   `json:"product_discount"`
	DiscountType string    `json:"product_discount_type"`
	Stock        int       `json:"product_stock"`
	Status       string    `json:"status"`
	Gender       string    `json:"gender"`
	Categories   []string  `json:"product_categories"`
	Sizes        []string  `json:"product_sizes"`
	Colors       []string  `json:"product_colors"`
	Images       []string  `json:"product_images"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeProduct attempts to construct a Product from an arbitrary map payload.
func NormalizeProduct(raw map[string]any) (Product, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Product{}, false
	}
	product := Product{
		ID:           id,
		SKU:          normalization.FirstString(raw, "skuid", "sku"),
		Name:         normalization.AsString(raw["product_name"]),
		Description:  normalization.AsString(raw["product_description"]),
		Price:        normalization.AsFloat64(raw["product_price"]),
		SalesPrice:   normalization.AsFloat64(raw["sales_price"]),
		Discount:     normalization.AsFloat64(raw["product_discount"]),
		DiscountType: normalization.AsString(raw["product_discount_type"]),
		Stock:        normalization.AsInt(raw["product_stock"]),
		Status:       normalization.AsString(raw["status"]),
		Gender:       normalization.AsString(raw["gender"]),
		Categories:   normalization.AsStringSlice(raw["product_categories"]),
		Sizes:        normalization.AsStringSlice(raw["product_sizes"]),
		Colors:       normalization.AsStringSlice(raw["product_colors"]),
		Images:       normalization.AsStringSlice(raw["product_images"]),
		CreatedAt:    normalization.AsTime(raw["created_at"]),
	}
	if product.Status == "" {
		product.Status = StockStatus(product.Stock)
	}
	return product, true
}

// BuildProductList projects a backend payload ({"products": [...]}) into products. Entries
// without an id are dropped.
func BuildProductList(payload any) []Product {
	rawItems := normalization.ListFromPayload(payload, "products")
	products := make([]Product, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		product, ok := NormalizeProduct(rawMap)
		if !ok {
			slog.Warn("product dropped: missing id", slog.String("name", normalization.AsString(rawMap["product_name"])))
			continue
		}
		products = append(products, product)
	}
	return products
}

// BuildProductDetail extracts a single product from {"product": {...}} or a bare object.
func BuildProductDetail(payload any) (*Product, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	if nested, ok := container["product"].(map[string]any); ok {
		container = nested
	}
	product, ok := NormalizeProduct(container)
	if !ok {
		return nil, false
	}
	return &product, true
}

// InStock reports whether the product can be sold.
func (p Product) InStock() bool {
	return strings.EqualFold(p.Status, StatusInStock) || p.Stock > 0
}
