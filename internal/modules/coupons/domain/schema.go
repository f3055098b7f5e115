package domain

import (
	"time"

	"storeAdmin/internal/shared/listengine"
)

// Schema describes how the offers view searches and orders coupons.
func Schema() listengine.Schema[Coupon] {
	return listengine.Schema[Coupon]{
		ID: func(c Coupon) string { return c.ID },
		Fields: map[string]listengine.Field[Coupon]{
			"code":         {Text: func(c Coupon) string { return c.Code }},
			"description":  {Text: func(c Coupon) string { return c.Description }},
			"discountType": {Text: func(c Coupon) string { return c.DiscountType }},
			"theme":        {Text: func(c Coupon) string { return c.Theme }},
			"value":        {Number: func(c Coupon) float64 { return c.DiscountValue }},
			"createdAt":    {Time: func(c Coupon) time.Time { return c.CreatedAt }},
			"validUntil":   {Time: func(c Coupon) time.Time { return c.ValidUntil }},
		},
		Searchable: []string{"code", "description", "discountType", "theme"},
		Facets:     []string{"discountType", "theme"},
		SortOptions: []listengine.SortOption{
			{Label: "Newest", Key: "createdAt", Direction: listengine.Descending},
			{Label: "Oldest", Key: "createdAt", Direction: listengine.Ascending},
			{Label: "Expiring soon", Key: "validUntil", Direction: listengine.Ascending},
		},
	}
}
