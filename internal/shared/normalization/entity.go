package normalization

import "strings"

// Canonical entity names used in topics, change events and view identifiers.
const (
	EntityProducts    = "products"
	EntityOrders      = "orders"
	EntityCoupons     = "coupons"
	EntitySubscribers = "subscribers"
	EntityMessages    = "messages"
	EntityInventory   = "inventory"
	EntitySettings    = "settings"
)

var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	"product":            EntityProducts,
	"products":           EntityProducts,
	"ecommerce-product":  EntityProducts,
	"ecommerce-products": EntityProducts,

	"order":  EntityOrders,
	"orders": EntityOrders,

	"coupon":  EntityCoupons,
	"coupons": EntityCoupons,
	"offer":   EntityCoupons,
	"offers":  EntityCoupons,

	"subscriber":  EntitySubscribers,
	"subscribers": EntitySubscribers,
	"newsletter":  EntitySubscribers,
	"email":       EntitySubscribers,
	"emails":      EntitySubscribers,

	"message":          EntityMessages,
	"messages":         EntityMessages,
	"contact":          EntityMessages,
	"contact-message":  EntityMessages,
	"contact-messages": EntityMessages,

	"inventory":       EntityInventory,
	"inventory-item":  EntityInventory,
	"inventory-items": EntityInventory,
	"stock":           EntityInventory,

	"setting":          EntitySettings,
	"settings":         EntitySettings,
	"account-settings": EntitySettings,
}

// NormalizeEntity converts various entity name formats to their canonical form.
// This function handles singular/plural forms, different separators (-, _),
// and common aliases.
//
// Example:
//
//	NormalizeEntity("Product") => "products"
//	NormalizeEntity("contact_message") => "messages"
//	NormalizeEntity("offers") => "coupons"
func NormalizeEntity(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	normalized := strings.ReplaceAll(trimmed, "_", "-")

	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	return normalized
}

// IsValidEntity checks if the given entity name is a known entity type.
func IsValidEntity(raw string) bool {
	normalized := NormalizeEntity(raw)
	for _, entity := range GetAllValidEntities() {
		if entity == normalized {
			return true
		}
	}
	return false
}

// GetAllValidEntities returns a list of all valid canonical entity names.
func GetAllValidEntities() []string {
	return []string{
		EntityProducts,
		EntityOrders,
		EntityCoupons,
		EntitySubscribers,
		EntityMessages,
		EntityInventory,
		EntitySettings,
	}
}
