package domain

import (
	"slices"

	settings "storeAdmin/internal/modules/settings/domain"
)

// View names, also used as page size keys in the configuration.
const (
	ViewProducts   = "products"
	ViewOrders     = "orders"
	ViewCoupons    = "coupons"
	ViewNewsletter = "newsletter"
	ViewMessages   = "messages"
	ViewInventory  = "inventory"
)

// PendingDelete is a delete awaiting confirmation.
type PendingDelete struct {
	View string   `json:"view"`
	IDs  []string `json:"ids"`
}

// AppState is the per-session state shared by every page of the dashboard.
type AppState struct {
	Currency         string                   `json:"currency"`
	PendingDelete    *PendingDelete           `json:"pendingDelete,omitempty"`
	EditingProductID string                   `json:"editingProductId,omitempty"`
	ExpandedOrderID  string                   `json:"expandedOrderId,omitempty"`
	OpenMessageID    string                   `json:"openMessageId,omitempty"`
	Profile          settings.AccountSettings `json:"profile"`
}

// Clone returns a copy that shares no slices with s.
func (s AppState) Clone() AppState {
	if s.PendingDelete != nil {
		pending := *s.PendingDelete
		pending.IDs = slices.Clone(pending.IDs)
		s.PendingDelete = &pending
	}
	return s
}
