package domain

import (
	"time"

	"storeAdmin/internal/shared/listengine"
)

// Schema describes how the inventory view searches and orders items.
func Schema() listengine.Schema[Item] {
	return listengine.Schema[Item]{
		ID: func(i Item) string { return i.ID },
		Fields: map[string]listengine.Field[Item]{
			"name":        {Text: func(i Item) string { return i.Name }},
			"sku":         {Text: func(i Item) string { return i.SKU }},
			"category":    {Text: func(i Item) string { return i.Category }},
			"status":      {Text: func(i Item) string { return i.Status }},
			"quantity":    {Number: func(i Item) float64 { return float64(i.Quantity) }},
			"price":       {Number: func(i Item) float64 { return i.Price }},
			"lastUpdated": {Time: func(i Item) time.Time { return i.LastUpdated }},
		},
		Searchable: []string{"name", "sku"},
		Facets:     []string{"category", "status"},
		SortOptions: []listengine.SortOption{
			{Label: "Name (A-Z)", Key: "name", Direction: listengine.Ascending},
			{Label: "Quantity (Low to High)", Key: "quantity", Direction: listengine.Ascending},
			{Label: "Quantity (High to Low)", Key: "quantity", Direction: listengine.Descending},
			{Label: "Recently updated", Key: "lastUpdated", Direction: listengine.Descending},
		},
	}
}
