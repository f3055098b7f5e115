package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/normalization"
)

const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"

	// LowStockThreshold is the highest quantity still reported as low stock.
	LowStockThreshold = 10

	defaultImage = "📦"
)

// Item is a stock keeping unit tracked by the inventory view.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"lastUpdated"`
	Image       string    `json:"image"`
}

// Value is the stock value of the item.
func (i Item) Value() float64 {
	return float64(i.Quantity) * i.Price
}

// StockStatus derives the status from a quantity: above the threshold is in stock, 1 up to the
// threshold is low, anything else is out of stock.
func StockStatus(quantity int) string {
	switch {
	case quantity > LowStockThreshold:
		return StatusInStock
	case quantity > 0:
		return StatusLowStock
	default:
		return StatusOutOfStock
	}
}

// NormalizeItem attempts to construct an Item from an arbitrary map payload.
func NormalizeItem(raw map[string]any) (Item, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Item{}, false
	}
	item := Item{
		ID:          id,
		Name:        normalization.AsString(raw["name"]),
		SKU:         normalization.AsString(raw["sku"]),
		Category:    normalization.AsString(raw["category"]),
		Quantity:    normalization.AsInt(raw["quantity"]),
		Price:       normalization.AsFloat64(raw["price"]),
		LastUpdated: normalization.AsTime(raw["lastUpdated"]),
		Image:       normalization.AsString(raw["image"]),
	}
	item.Status = StockStatus(item.Quantity)
	if item.Image == "" {
		item.Image = defaultImage
	}
	return item, true
}

// BuildItemList projects a payload into items, dropping entries without an id.
func BuildItemList(payload any) []Item {
	rawItems := normalization.ListFromPayload(payload, "inventory")
	items := make([]Item, 0, len(rawItems))
	for _, entry := range rawItems {
		rawMap, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item, ok := NormalizeItem(rawMap)
		if !ok {
			slog.Warn("inventory item dropped: missing id")
			continue
		}
		items = append(items, item)
	}
	return items
}

//go:embed fixtures/inventory.json
var fixture []byte

// Fixture returns the seed inventory.
func Fixture() ([]Item, error) {
	var payload []any
	if err := json.Unmarshal(fixture, &payload); err != nil {
		return nil, fmt.Errorf("decode inventory fixture: %w", err)
	}
	return BuildItemList(payload), nil
}

// ItemForm is the add-item form.
type ItemForm struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Validate checks the required fields of the form.
func (f ItemForm) Validate() error {
	errs := httputil.NewValidationError()
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", "Product name is required")
	}
	if strings.TrimSpace(f.SKU) == "" {
		errs.Add("sku", "SKU is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		errs.Add("category", "Category is required")
	}
	if f.Quantity < 0 {
		errs.Add("quantity", "Quantity cannot be negative")
	}
	if f.Price < 0 {
		errs.Add("price", "Price cannot be negative")
	}
	return errs.OrNil()
}

// NewItem builds the item stored for a validated form.
func (f ItemForm) NewItem(id string, now time.Time) Item {
	return Item{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		SKU:         strings.TrimSpace(f.SKU),
		Category:    strings.TrimSpace(f.Category),
		Quantity:    f.Quantity,
		Price:       f.Price,
		Status:      StockStatus(f.Quantity),
		LastUpdated: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Image:       defaultImage,
	}
}

// IDGenerator hands out time-ordered ULIDs.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *rand.Rand
}

// NewIDGenerator seeds a generator from the clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// New returns a ULID for now.
func (g *IDGenerator) New(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), g.entropy).String()
}

// Totals summarizes the inventory header cards.
type Totals struct {
	Units      int      `json:"totalItems"`
	Value      float64  `json:"totalValue"`
	LowStock   int      `json:"lowStockItems"`
	Categories []string `json:"categories"`
}

// Summarize computes the totals over items. Categories are listed in first-seen order.
func Summarize(items []Item) Totals {
	totals := Totals{Categories: []string{}}
	seen := make(map[string]struct{})
	for _, item := range items {
		totals.Units += item.Quantity
		totals.Value += item.Value()
		if item.Quantity > 0 && item.Quantity <= LowStockThreshold {
			totals.LowStock++
		}
		if _, ok := seen[item.Category]; !ok && item.Category != "" {
			seen[item.Category] = struct{}{}
			totals.Categories = append(totals.Categories, item.Category)
		}
	}
	return totals
}

// SortedCategories returns the distinct categories alphabetically.
func SortedCategories(items []Item) []string {
	categories := Summarize(items).Categories
	sort.Strings(categories)
	return categories
}
