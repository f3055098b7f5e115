package domain

import (
	"time"

	"storeAdmin/internal/shared/listengine"
)

// Schema describes how the products view searches and orders the catalog.
func Schema() listengine.Schema[Product] {
	return listengine.Schema[Product]{
		ID: func(p Product) string { return p.ID },
		Fields: map[string]listengine.Field[Product]{
			"name":       {Text: func(p Product) string { return p.Name }},
			"sku":        {Text: func(p Product) string { return p.SKU }},
			"categories": {Texts: func(p Product) []string { return p.Categories }},
			"status":     {Text: func(p Product) string { return p.Status }},
			"price":      {Number: func(p Product) float64 { return p.Price }},
			"stock":      {Number: func(p Product) float64 { return float64(p.Stock) }},
			"createdAt":  {Time: func(p Product) time.Time { return p.CreatedAt }},
		},
		Searchable: []string{"name", "sku", "categories"},
		Facets:     []string{"status"},
		SortOptions: []listengine.SortOption{
			{Label: "Newest", Key: "createdAt", Direction: listengine.Descending},
			{Label: "Oldest", Key: "createdAt", Direction: listengine.Ascending},
			{Label: "Price (Low to High)", Key: "price", Direction: listengine.Ascending},
			{Label: "Price (High to Low)", Key: "price", Direction: listengine.Descending},
		},
		DefaultSort: "Newest",
	}
}
