package domain

import (
	"time"

	"storeAdmin/internal/shared/listengine"
)

// Schema describes how the orders view searches and orders records.
func Schema() listengine.Schema[Order] {
	return listengine.Schema[Order]{
		ID: func(o Order) string { return o.ID },
		Fields: map[string]listengine.Field[Order]{
			"id":            {Text: func(o Order) string { return o.ID }},
			"customerName":  {Text: func(o Order) string { return o.Customer.Name }},
			"customerEmail": {Text: func(o Order) string { return o.Customer.Email }},
			"status":        {Text: func(o Order) string { return string(o.Status) }},
			"total":         {Number: func(o Order) float64 { return o.Total }},
			"date":          {Time: func(o Order) time.Time { return o.Date }},
		},
		Searchable: []string{"id", "customerName", "customerEmail"},
		Facets:     []string{"status"},
		SortOptions: []listengine.SortOption{
			{Label: "Newest", Key: "date", Direction: listengine.Descending},
			{Label: "Oldest", Key: "date", Direction: listengine.Ascending},
			{Label: "Total (Low to High)", Key: "total", Direction: listengine.Ascending},
			{Label: "Total (High to Low)", Key: "total", Direction: listengine.Descending},
		},
		DefaultSort: "Newest",
	}
}
