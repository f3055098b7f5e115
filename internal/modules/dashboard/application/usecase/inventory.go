package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storeAdmin/internal/modules/dashboard/domain"
	inventory "storeAdmin/internal/modules/inventory/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
)

// InventoryUseCase drives the inventory view. Items are seeded from the bundled fixture and
// edited locally.
type InventoryUseCase struct {
	listView[inventory.Item]
	notify *BroadcastUseCase
	ids    *inventory.IDGenerator
	now    func() time.Time
	load   func() ([]inventory.Item, error)
}

func NewInventoryUseCase(notify *BroadcastUseCase, pageSize int) *InventoryUseCase {
	return &InventoryUseCase{
		listView: listView[inventory.Item]{store: NewViewStore(domain.ViewInventory, inventory.Schema(), pageSize)},
		notify:   notify,
		ids:      inventory.NewIDGenerator(),
		now:      time.Now,
		load:     inventory.Fixture,
	}
}

// Mount loads the inventory into the session's view.
func (uc *InventoryUseCase) Mount(_ context.Context, session auth.Session) (listengine.Page[inventory.Item], error) {
	items, err := uc.load()
	if err != nil {
		return listengine.Page[inventory.Item]{}, err
	}
	return uc.store.Mount(session.ID(), items), nil
}

// Add validates the form and prepends the new item.
func (uc *InventoryUseCase) Add(ctx context.Context, session auth.Session, form inventory.ItemForm) (inventory.Item, error) {
	if err := form.Validate(); err != nil {
		return inventory.Item{}, err
	}
	now := uc.now()
	item := form.NewItem(uc.ids.New(now), now)
	err := uc.store.With(session.ID(), func(engine *listengine.Engine[inventory.Item]) error {
		engine.Upsert(item)
		return nil
	})
	if err != nil {
		return inventory.Item{}, err
	}
	uc.notify.Success(ctx, session.ID(), fmt.Sprintf("%s added to inventory", item.Name))
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewInventory, Reason: domain.ActionCreated, IDs: []string{item.ID}})
	return item, nil
}

// Delete removes one item from the view.
func (uc *InventoryUseCase) Delete(ctx context.Context, session auth.Session, id string) error {
	id = strings.TrimSpace(id)
	removed := 0
	remaining := 0
	err := uc.store.With(session.ID(), func(engine *listengine.Engine[inventory.Item]) error {
		removed = engine.ApplyDeletion(id)
		remaining = engine.Len()
		return nil
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrRecordNotFound
	}
	uc.notify.Success(ctx, session.ID(), "Item removed from inventory")
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewInventory, Reason: domain.ActionDeleted, IDs: []string{id}, TotalItems: remaining})
	return nil
}

// Totals summarizes the whole inventory, ignoring the current search and filters.
func (uc *InventoryUseCase) Totals(session auth.Session) (inventory.Totals, error) {
	var totals inventory.Totals
	err := uc.store.With(session.ID(), func(engine *listengine.Engine[inventory.Item]) error {
		totals = inventory.Summarize(engine.Records())
		return nil
	})
	return totals, err
}

// Categories lists the distinct categories for the category filter.
func (uc *InventoryUseCase) Categories(session auth.Session) ([]string, error) {
	var categories []string
	err := uc.store.With(session.ID(), func(engine *listengine.Engine[inventory.Item]) error {
		categories = inventory.SortedCategories(engine.Records())
		return nil
	})
	return categories, err
}
