package domain

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"storeAdmin/internal/shared/normalization"
)

// Status is the fulfilment stage of an order.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusConfirmed  Status = "confirmed"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusProcessing, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

// Label is the human readable status.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseStatus validates a status value, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, status := range Statuses {
		if status == candidate {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// ErrUnknownStatus is returned for statuses outside Statuses.
var ErrUnknownStatus = errors.New("unknown order status")

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	SKU      string  `json:"sku"`
}

type Shipping struct {
	Address           string    `json:"address"`
	Carrier           string    `json:"carrier"`
	Tracking          string    `json:"tracking"`
	Cost              float64   `json:"cost"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

// Order is a customer order with its line items and shipment.
type Order struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Customer Customer  `json:"customer"`
	Status   Status    `json:"status"`
	Total    float64   `json:"total"`
	Items    []Item    `json:"items"`
	Shipping Shipping  `json:"shipping"`
}

// Subtotal is the order total without shipping.
func (o Order) Subtotal() float64 {
	return math.Round((o.Total-o.Shipping.Cost)*100) / 100
}

// NormalizeOrder attempts to construct an Order from an arbitrary map payload.
func NormalizeOrder(raw map[string]any) (Order, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Order{}, false
	}
	order := Order{
		ID:    id,
		Date:  normalization.AsTime(raw["date"]),
		Total: normalization.AsFloat64(raw["total"]),
	}
	if status, err := ParseStatus(normalization.AsString(raw["status"])); err == nil {
		order.Status = status
	} else {
		order.Status = StatusProcessing
	}
	if customer, ok := raw["customer"].(map[string]any); ok {
		order.Customer = Customer{
			Name:  normalization.AsString(customer["name"]),
			Email: normalization.AsString(customer["email"]),
			Phone: normalization.AsString(customer["phone"]),
		}
	}
	for _, entry := range normalization.AsInterfaceSlice(raw["items"]) {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		order.Items = append(order.Items, Item{
			Name:     normalization.AsString(item["name"]),
			Quantity: normalization.AsInt(item["quantity"]),
			Price:    normalization.AsFloat64(item["price"]),
			SKU:      normalization.AsString(item["sku"]),
		})
	}
	if shipping, ok := raw["shipping"].(map[string]any); ok {
		order.Shipping = Shipping{
			Address:           normalization.AsString(shipping["address"]),
			Carrier:           normalization.AsString(shipping["carrier"]),
			Tracking:          normalization.AsString(shipping["tracking"]),
			Cost:              normalization.AsFloat64(shipping["cost"]),
			EstimatedDelivery: normalization.AsTime(shipping["estimatedDelivery"]),
		}
	}
	return order, true
}

// BuildOrderList projects a payload into orders, dropping entries without an id.
func BuildOrderList(payload any) []Order {
	rawItems := normalization.ListFromPayload(payload, "orders")
	orders := make([]Order, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		order, ok := NormalizeOrder(rawMap)
		if !ok {
			slog.Warn("order dropped: missing id")
			continue
		}
		orders = append(orders, order)
	}
	return orders
}

//go:embed fixtures/orders.json
var fixture []byte

// Fixture returns the seed orders shown until the backend exposes an orders endpoint.
func Fixture() ([]Order, error) {
	var payload []any
	if err := json.Unmarshal(fixture, &payload); err != nil {
		return nil, fmt.Errorf("decode orders fixture: %w", err)
	}
	return BuildOrderList(payload), nil
}

// StatusCounts tallies orders per status; every status is present.
func StatusCounts(orders []Order) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, status := range Statuses {
		counts[status] = 0
	}
	for _, order := range orders {
		counts[order.Status]++
	}
	return counts
}
