package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	products "storeAdmin/internal/modules/products/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
)

// ProductsUseCase drives the products list and the add/edit product form.
type ProductsUseCase struct {
	listView[products.Product]
	backend     port.Backend
	sessions    *SessionStore
	notify      *BroadcastUseCase
	generateSKU products.SKUGenerator
}

func NewProductsUseCase(backend port.Backend, sessions *SessionStore, notify *BroadcastUseCase, pageSize int) *ProductsUseCase {
	return &ProductsUseCase{
		listView:    listView[products.Product]{store: NewViewStore(domain.ViewProducts, products.Schema(), pageSize)},
		backend:     backend,
		sessions:    sessions,
		notify:      notify,
		generateSKU: products.RandomSKU,
	}
}

// WithSKUGenerator replaces the generator used for new products.
func (uc *ProductsUseCase) WithSKUGenerator(generate products.SKUGenerator) *ProductsUseCase {
	if generate != nil {
		uc.generateSKU = generate
	}
	return uc
}

// Mount fetches the catalog and (re)loads the session's view.
func (uc *ProductsUseCase) Mount(ctx context.Context, session auth.Session) (listengine.Page[products.Product], error) {
	items, err := uc.backend.ListProducts(ctx, session.Token)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to load products", err)
		return listengine.Page[products.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return uc.store.Mount(session.ID(), items), nil
}

// RequestDelete records the products awaiting confirmation: ids when given, otherwise the
// current selection.
func (uc *ProductsUseCase) RequestDelete(session auth.Session, ids []string) (domain.PendingDelete, error) {
	targets, err := uc.deletable(session, ids)
	if err != nil {
		return domain.PendingDelete{}, err
	}
	return uc.sessions.RequestDelete(session.ID(), domain.ViewProducts, targets), nil
}

// CancelDelete closes the confirmation without deleting.
func (uc *ProductsUseCase) CancelDelete(session auth.Session) {
	uc.sessions.CancelDelete(session.ID(), domain.ViewProducts)
}

// ConfirmDelete deletes the pending products remotely and then from the view. It returns the
// number of products deleted.
func (uc *ProductsUseCase) ConfirmDelete(ctx context.Context, session auth.Session) (int, error) {
	ids, err := uc.sessions.TakePendingDelete(session.ID(), domain.ViewProducts)
	if err != nil {
		return 0, err
	}
	if err := uc.backend.DeleteProducts(ctx, session.Token, ids); err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to delete products", err)
		return 0, fmt.Errorf("delete products: %w", err)
	}
	remaining := uc.remove(session, ids...)
	slog.Info("products deleted", slog.String("sessionId", session.ID()), slog.Int("count", len(ids)))
	uc.notify.Success(ctx, session.ID(), fmt.Sprintf("%d product(s) deleted successfully", len(ids)))
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewProducts, Reason: domain.ActionDeleted, IDs: ids, TotalItems: remaining})
	return len(ids), nil
}

// Create validates the form, derives the SKU, sales price and status, and submits it.
func (uc *ProductsUseCase) Create(ctx context.Context, session auth.Session, form products.ProductForm) (*products.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	submission := form.Derive(session.UserID(), "", uc.generateSKU)
	created, err := uc.backend.CreateProduct(ctx, session.Token, submission)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to add product", err)
		return nil, fmt.Errorf("create product: %w", err)
	}
	uc.notify.Success(ctx, session.ID(), "Product added successfully")
	if created == nil {
		// Acknowledged without the stored product: refetch so the view shows it.
		if uc.Mounted(session) {
			if _, err := uc.Mount(ctx, session); err != nil {
				slog.Warn("products refetch after create failed", slog.String("sessionId", session.ID()), slog.Any("error", err))
			}
		}
		return nil, nil
	}
	uc.upsert(session, *created)
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewProducts, Reason: domain.ActionCreated, IDs: []string{created.ID}})
	return created, nil
}

// Edit selects a product for the edit form and returns the prefilled form.
func (uc *ProductsUseCase) Edit(session auth.Session, id string) (products.ProductForm, error) {
	product, err := uc.find(session, id)
	if err != nil {
		return products.ProductForm{}, err
	}
	uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		state.EditingProductID = product.ID
	})
	return products.FormFromProduct(product), nil
}

// Update saves the edit form. The product keeps its SKU and any existing images the form
// still lists.
func (uc *ProductsUseCase) Update(ctx context.Context, session auth.Session, id string, form products.ProductForm) (*products.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uc.sessions.Get(session.ID()).EditingProductID
	}
	current, err := uc.find(session, id)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	submission := form.Derive(session.UserID(), current.SKU, nil)
	updated, err := uc.backend.UpdateProduct(ctx, session.Token, current.ID, submission)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to update product", err)
		return nil, fmt.Errorf("update product %s: %w", current.ID, err)
	}
	result := submission.Apply(current)
	if updated != nil {
		result = *updated
	}
	uc.upsert(session, result)
	uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		state.EditingProductID = ""
	})
	uc.notify.Success(ctx, session.ID(), "Product updated successfully")
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewProducts, Reason: domain.ActionUpdated, IDs: []string{result.ID}})
	return &result, nil
}

// ApplyChange applies a backend change event to every mounted products view.
func (uc *ProductsUseCase) ApplyChange(_ context.Context, msg *domain.Message) int {
	return applyRemoteChange(uc.store, msg, products.NormalizeProduct)
}
