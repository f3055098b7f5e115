package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	products "storeAdmin/internal/modules/products/domain"
	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/listengine"
)

func newProductsFixture(t *testing.T, n int) (*ProductsUseCase, *fakeBackend, *recordingBroadcaster, *SessionStore) {
	t.Helper()
	backend := &fakeBackend{products: catalog(n)}
	broadcaster := &recordingBroadcaster{}
	sessions := NewSessionStore("$")
	uc := NewProductsUseCase(backend, sessions, NewBroadcastUseCase(broadcaster), 8).
		WithSKUGenerator(func() string { return "SKU123456" })
	return uc, backend, broadcaster, sessions
}

func TestProductsBulkDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, backend, broadcaster, _ := newProductsFixture(t, 20)
	session := testSession(t, "s1")

	page, err := uc.Mount(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)

	_, err = uc.ToggleSelect(session, "p01")
	require.NoError(t, err)
	_, err = uc.ToggleSelect(session, "p02")
	require.NoError(t, err)

	pending, err := uc.RequestDelete(session, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewProducts, pending.View)
	assert.ElementsMatch(t, []string{"p01", "p02"}, pending.IDs)
	assert.Empty(t, backend.deletedProducts, "nothing is deleted before confirmation")

	deleted, err := uc.ConfirmDelete(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	require.Len(t, backend.deletedProducts, 1)

	page, err = uc.Page(session)
	require.NoError(t, err)
	assert.Equal(t, 18, page.TotalItems)
	assert.Empty(t, page.Selected)
	assert.Equal(t, domain.ToastSuccess, broadcaster.lastToast(t).Level)

	_, err = uc.ConfirmDelete(ctx, session)
	assert.ErrorIs(t, err, ErrNoPendingDelete)
	assert.Len(t, backend.deletedProducts, 1)
}

func TestProductsCancelAndFailedDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, backend, broadcaster, sessions := newProductsFixture(t, 5)
	session := testSession(t, "s1")
	_, err := uc.Mount(ctx, session)
	require.NoError(t, err)

	_, err = uc.RequestDelete(session, nil)
	assert.ErrorIs(t, err, ErrNothingSelected)

	_, err = uc.RequestDelete(session, []string{"p03", "missing"})
	require.NoError(t, err)
	uc.CancelDelete(session)
	assert.Nil(t, sessions.Get(session.ID()).PendingDelete)

	_, err = uc.RequestDelete(session, []string{"p03"})
	require.NoError(t, err)
	backend.failWith = port.ErrBackendFailure
	_, err = uc.ConfirmDelete(ctx, session)
	require.ErrorIs(t, err, port.ErrBackendFailure)
	assert.Equal(t, domain.ToastError, broadcaster.lastToast(t).Level)

	page, err := uc.Page(session)
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalItems)
}

func TestProductsCreateDerivesFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, backend, _, _ := newProductsFixture(t, 3)
	session := testSession(t, "s1")
	_, err := uc.Mount(ctx, session)
	require.NoError(t, err)

	created, err := uc.Create(ctx, session, products.ProductForm{Name: "Blue Scarf", Price: 200, Discount: 15, Stock: 0})
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Len(t, backend.created, 1)
	submission := backend.created[0]
	assert.Equal(t, "SKU123456", submission.SKU)
	assert.InDelta(t, 170.0, submission.SalesPrice, 0.001)
	assert.Equal(t, products.StatusOutOfStock, submission.Status)
	assert.Equal(t, session.UserID(), submission.OwnerID)

	page, err := uc.Page(session)
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalItems)

	_, err = uc.Create(ctx, session, products.ProductForm{})
	var validation *httputil.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "product_name")
}

func TestProductsUpdateKeepsSKU(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, backend, _, sessions := newProductsFixture(t, 3)
	session := testSession(t, "s1")
	_, err := uc.Mount(ctx, session)
	require.NoError(t, err)

	form, err := uc.Edit(session, "p02")
	require.NoError(t, err)
	assert.Equal(t, "p02", sessions.Get(session.ID()).EditingProductID)

	form.Price = 55
	form.Stock = 4
	updated, err := uc.Update(ctx, session, "", form)
	require.NoError(t, err)
	assert.Equal(t, "SKU100002", updated.SKU)
	assert.Equal(t, "SKU100002", backend.updated["p02"].SKU)
	assert.Equal(t, products.StatusInStock, updated.Status)
	assert.Empty(t, sessions.Get(session.ID()).EditingProductID)

	_, err = uc.Update(ctx, session, "nope", form)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestProductsViewsAreScopedPerSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, _, _, _ := newProductsFixture(t, 20)
	first := testSession(t, "s1")
	second := testSession(t, "s2")
	_, err := uc.Mount(ctx, first)
	require.NoError(t, err)

	_, err = uc.Page(second)
	assert.ErrorIs(t, err, ErrViewNotMounted)

	_, err = uc.Mount(ctx, second)
	require.NoError(t, err)
	page, err := uc.Apply(first, listengine.Criteria{Search: "product 1", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 10, page.TotalItems)

	page, err = uc.Page(second)
	require.NoError(t, err)
	assert.Equal(t, 20, page.TotalItems)
}

func TestProductsApplyRemoteChange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, _, _, _ := newProductsFixture(t, 3)
	first := testSession(t, "s1")
	second := testSession(t, "s2")
	_, err := uc.Mount(ctx, first)
	require.NoError(t, err)
	_, err = uc.Mount(ctx, second)
	require.NoError(t, err)

	touched := uc.ApplyChange(ctx, &domain.Message{Action: domain.ActionCreated, Data: map[string]any{"id": "p99", "product_name": "Remote", "product_price": 12}})
	assert.Equal(t, 2, touched)

	touched = uc.ApplyChange(ctx, &domain.Message{Action: domain.ActionDeleted, Data: map[string]any{"ids": []any{"p01", "p99"}}})
	assert.Equal(t, 2, touched)

	page, err := uc.Page(second)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)

	assert.Zero(t, uc.ApplyChange(ctx, &domain.Message{Action: domain.ActionCreated, Data: map[string]any{"product_name": "no id"}}))
	assert.Zero(t, uc.ApplyChange(ctx, &domain.Message{Action: "archived"}))
}
