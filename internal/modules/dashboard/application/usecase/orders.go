package usecase

import (
	"context"
	"fmt"
	"strings"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	orders "storeAdmin/internal/modules/orders/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/listengine"
)

// OrdersUseCase drives the orders view. Orders come from the bundled fixture since the backend
// exposes no orders endpoint.
type OrdersUseCase struct {
	listView[orders.Order]
	sessions *SessionStore
	notify   *BroadcastUseCase
	invoices port.InvoiceRenderer
	load     func() ([]orders.Order, error)
}

func NewOrdersUseCase(sessions *SessionStore, notify *BroadcastUseCase, invoices port.InvoiceRenderer, pageSize int) *OrdersUseCase {
	return &OrdersUseCase{
		listView: listView[orders.Order]{store: NewViewStore(domain.ViewOrders, orders.Schema(), pageSize)},
		sessions: sessions,
		notify:   notify,
		invoices: invoices,
		load:     orders.Fixture,
	}
}

// Mount loads the orders into the session's view.
func (uc *OrdersUseCase) Mount(_ context.Context, session auth.Session) (listengine.Page[orders.Order], error) {
	items, err := uc.load()
	if err != nil {
		return listengine.Page[orders.Order]{}, err
	}
	return uc.store.Mount(session.ID(), items), nil
}

// ToggleDetail expands an order, or collapses it when it is already expanded. It returns the
// order and whether it is now expanded.
func (uc *OrdersUseCase) ToggleDetail(session auth.Session, id string) (orders.Order, bool, error) {
	order, err := uc.find(session, id)
	if err != nil {
		return orders.Order{}, false, err
	}
	state := uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		if state.ExpandedOrderID == order.ID {
			state.ExpandedOrderID = ""
			return
		}
		state.ExpandedOrderID = order.ID
	})
	return order, state.ExpandedOrderID == order.ID, nil
}

// UpdateStatus moves an order to a new status.
func (uc *OrdersUseCase) UpdateStatus(ctx context.Context, session auth.Session, id, rawStatus string) (orders.Order, error) {
	status, err := orders.ParseStatus(rawStatus)
	if err != nil {
		validation := httputil.NewValidationError()
		validation.Add("status", err.Error())
		return orders.Order{}, validation
	}
	var (
		updated orders.Order
		found   bool
	)
	err = uc.store.With(session.ID(), func(engine *listengine.Engine[orders.Order]) error {
		found = engine.Update(strings.TrimSpace(id), func(order orders.Order) orders.Order {
			order.Status = status
			updated = order
			return order
		})
		return nil
	})
	if err != nil {
		return orders.Order{}, err
	}
	if !found {
		return orders.Order{}, ErrRecordNotFound
	}
	uc.notify.Success(ctx, session.ID(), fmt.Sprintf("Order %s marked as %s", updated.ID, status.Label()))
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewOrders, Reason: domain.ActionUpdated, IDs: []string{updated.ID}})
	return updated, nil
}

// StatusCounts counts the session's orders per status.
func (uc *OrdersUseCase) StatusCounts(session auth.Session) (map[orders.Status]int, error) {
	var counts map[orders.Status]int
	err := uc.store.With(session.ID(), func(engine *listengine.Engine[orders.Order]) error {
		counts = orders.StatusCounts(engine.Records())
		return nil
	})
	return counts, err
}

// Invoice renders the PDF invoice of an order and suggests a file name.
func (uc *OrdersUseCase) Invoice(ctx context.Context, session auth.Session, id string) ([]byte, string, error) {
	order, err := uc.find(session, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.invoices.Render(order, uc.sessions.Get(session.ID()).Currency)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to generate invoice", err)
		return nil, "", fmt.Errorf("render invoice %s: %w", order.ID, err)
	}
	return pdf, "invoice-" + order.ID + ".pdf", nil
}
