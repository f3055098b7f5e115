package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coupons "storeAdmin/internal/modules/coupons/domain"
	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/infrastructure"
	messages "storeAdmin/internal/modules/messages/domain"
	newsletter "storeAdmin/internal/modules/newsletter/domain"
	products "storeAdmin/internal/modules/products/domain"
	settings "storeAdmin/internal/modules/settings/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
)

const testSecret = "transport-secret"

func signToken(t *testing.T, subject, sessionID string) string {
	t.Helper()
	claims := auth.Claims{
		SessionID: sessionID,
		Email:     subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

type stubBackend struct {
	mu          sync.Mutex
	products    []products.Product
	coupons     []coupons.Coupon
	subscribers []newsletter.Subscriber
	messages    []messages.Message
	deleted     [][]string
	// deletedCoupons records coupon ids in delete order.
	deletedCoupons []string
}

func (b *stubBackend) ListProducts(context.Context, string) ([]products.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.products), nil
}

func (b *stubBackend) CreateProduct(_ context.Context, _ string, submission products.ProductSubmission) (*products.Product, error) {
	product := submission.Apply(products.Product{ID: "created-1", CreatedAt: time.Now().UTC()})
	return &product, nil
}

func (b *stubBackend) UpdateProduct(context.Context, string, string, products.ProductSubmission) (*products.Product, error) {
	return nil, nil
}

func (b *stubBackend) DeleteProducts(_ context.Context, _ string, ids []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, slices.Clone(ids))
	return nil
}

func (b *stubBackend) ListCoupons(context.Context, string) ([]coupons.Coupon, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.coupons), nil
}

func (b *stubBackend) CreateCoupon(context.Context, string, coupons.CouponRequest) (*coupons.Coupon, error) {
	return nil, nil
}

func (b *stubBackend) DeleteCoupon(_ context.Context, _ string, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletedCoupons = append(b.deletedCoupons, id)
	return nil
}

func (b *stubBackend) ListSubscribers(context.Context, string) ([]newsletter.Subscriber, error) {
	return slices.Clone(b.subscribers), nil
}

func (b *stubBackend) ListMessages(context.Context, string) ([]messages.Message, error) {
	return slices.Clone(b.messages), nil
}

func (b *stubBackend) MarkMessageRead(context.Context, string, string) error { return nil }

func (b *stubBackend) DeleteMessage(context.Context, string, string) error { return nil }

func (b *stubBackend) GetAccountSettings(context.Context, string) (settings.AccountSettings, error) {
	return settings.AccountSettings{DisplayName: "Ada", Email: "ada@example.com"}, nil
}

func (b *stubBackend) UpdateAccountSettings(context.Context, string, settings.Update) (settings.AccountSettings, error) {
	return settings.AccountSettings{}, nil
}

type stubIdentity struct {
	t *testing.T
}

func (s stubIdentity) SignIn(_ context.Context, credentials port.Credentials) (port.AuthSession, error) {
	if credentials.Password != "secret123" {
		return port.AuthSession{}, fmt.Errorf("%w: wrong password", port.ErrInvalidCredentials)
	}
	return port.AuthSession{AccessToken: signToken(s.t, "admin", "sess-login"), ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s stubIdentity) SignUp(_ context.Context, registration port.Registration) (port.AuthSession, error) {
	return port.AuthSession{AccessToken: signToken(s.t, "new-user", "sess-signup")}, nil
}

func sampleProducts() []products.Product {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	items := make([]products.Product, 0, 20)
	for i := 1; i <= 17; i++ {
		items = append(items, products.Product{
			ID:        fmt.Sprintf("p%d", i),
			SKU:       fmt.Sprintf("SKU1000%02d", i),
			Name:      fmt.Sprintf("Red Shirt %d", i),
			Price:     float64(10 + i),
			Stock:     i,
			Status:    products.StockStatus(i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	for i, entry := range []struct {
		name  string
		price float64
	}{{"Blue Jacket", 50}, {"Blue Jeans", 20}, {"Navy blue cap", 35}} {
		items = append(items, products.Product{
			ID:        fmt.Sprintf("b%d", i+1),
			SKU:       fmt.Sprintf("SKU2000%02d", i+1),
			Name:      entry.name,
			Price:     entry.price,
			Stock:     5,
			Status:    products.StockStatus(5),
			CreatedAt: base.Add(time.Duration(30+i) * time.Hour),
		})
	}
	return items
}

type testServer struct {
	e       *echo.Echo
	backend *stubBackend
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	backend := &stubBackend{
		products: sampleProducts(),
		coupons: []coupons.Coupon{
			{ID: "c1", Code: "SPRING", DiscountType: coupons.DiscountPercentage, DiscountValue: 10, MaxUses: 5, IsActive: true},
			{ID: "c2", Code: "WINTER", DiscountType: coupons.DiscountFixed, DiscountValue: 15, MaxUses: 5, IsActive: true},
		},
		subscribers: []newsletter.Subscriber{
			{ID: "1", Email: "ana@example.com", Name: "Ana", Status: newsletter.StatusSubscribed},
			{ID: "2", Email: "bo@example.com", Name: "Bo", Status: newsletter.StatusPending},
		},
		messages: []messages.Message{{ID: "m1", Name: "Zoe", Email: "zoe@example.com", Subject: "Hi"}},
	}
	hub := infrastructure.NewHub()
	notify := usecase.NewBroadcastUseCase(hub)
	sessions := usecase.NewSessionStore("$")
	validator := auth.NewJWTValidator(testSecret)

	productsUC := usecase.NewProductsUseCase(backend, sessions, notify, 8)
	ordersUC := usecase.NewOrdersUseCase(sessions, notify, infrastructure.NewInvoicePDF("Test Store"), 10)
	couponsUC := usecase.NewCouponsUseCase(backend, sessions, notify, 10)
	newsletterUC := usecase.NewNewsletterUseCase(backend, notify, 10)
	messagesUC := usecase.NewMessagesUseCase(backend, sessions, notify, 10)
	inventoryUC := usecase.NewInventoryUseCase(notify, 10)
	authUC := usecase.NewAuthUseCase(stubIdentity{t: t}, validator, sessions, productsUC, ordersUC, couponsUC, newsletterUC, messagesUC, inventoryUC)

	e := echo.New()
	Register(e, Dependencies{
		Validator:  validator,
		Hub:        hub,
		Auth:       authUC,
		Products:   productsUC,
		Orders:     ordersUC,
		Coupons:    couponsUC,
		Newsletter: newsletterUC,
		Messages:   messagesUC,
		Inventory:  inventoryUC,
		Settings:   usecase.NewSettingsUseCase(backend, sessions, notify),
		Summary:    usecase.NewSummaryUseCase(backend),
		CookieName: auth.DefaultCookieName,
	})
	return &testServer{e: e, backend: backend, token: signToken(t, "admin", "sess-1")}
}

func (s *testServer) do(method, path, body string, withSession bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if withSession {
		req.AddCookie(&http.Cookie{Name: auth.DefaultCookieName, Value: s.token})
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestUnauthenticatedRequests(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/products", "", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, "/api/products", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/login", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "login", decode[pageModel](t, rec).Page)
}

func TestProductsSearchSelectAndDelete(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/products?q=blue&sort=Price+(Low+to+High)", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[listengine.Page[products.Product]](t, rec)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []string{"b2", "b3", "b1"}, []string{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID})

	rec = s.do(http.MethodPost, "/api/products/select-page", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{"b1", "b2", "b3"}, decode[listengine.Page[products.Product]](t, rec).Selected)

	rec = s.do(http.MethodPost, "/api/products/delete", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/products/delete/confirm", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[struct {
		Deleted int                               `json:"deleted"`
		Page    listengine.Page[products.Product] `json:"page"`
	}](t, rec)
	assert.Equal(t, 3, result.Deleted)
	assert.Empty(t, result.Page.Items)
	assert.Equal(t, 1, result.Page.TotalPages)
	require.Len(t, s.backend.deleted, 1)
	assert.ElementsMatch(t, []string{"b1", "b2", "b3"}, s.backend.deleted[0])

	rec = s.do(http.MethodPost, "/api/products/delete/confirm", "", true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListQueryRefinesCriteriaAndPages(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	type productPage = listengine.Page[products.Product]

	rec := s.do(http.MethodGet, "/api/products?q=shirt", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[productPage](t, rec)
	assert.Equal(t, 17, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)

	rec = s.do(http.MethodGet, "/api/products?page=2", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page = decode[productPage](t, rec)
	assert.Equal(t, "shirt", page.Criteria.Search, "a page link keeps the search")
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 17, page.TotalItems)

	rec = s.do(http.MethodPut, "/api/products/page", `{"page":3}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, decode[productPage](t, rec).Page)

	rec = s.do(http.MethodPost, "/api/products/page/previous", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[productPage](t, rec).Page)

	rec = s.do(http.MethodPost, "/api/products/page/next", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, decode[productPage](t, rec).Page)

	rec = s.do(http.MethodPost, "/api/products/page/next", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, decode[productPage](t, rec).Page, "last page is clamped")

	rec = s.do(http.MethodGet, "/api/products?q=", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page = decode[productPage](t, rec)
	assert.Empty(t, page.Criteria.Search)
	assert.Equal(t, 20, page.TotalItems)
	assert.Equal(t, 1, page.Page)
}

func TestListUnmountDropsView(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/products?q=blue", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodDelete, "/api/products", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPut, "/api/products/page", `{"page":2}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/products", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[listengine.Page[products.Product]](t, rec)
	assert.Empty(t, page.Criteria.Search, "a remount starts from fresh criteria")
	assert.Equal(t, 20, page.TotalItems)
}

func TestOfferDeleteNeedsConfirmation(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/offers", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[listengine.Page[coupons.Coupon]](t, rec).TotalItems)

	rec = s.do(http.MethodPost, "/api/offers/missing/delete", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/offers/c2/delete", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodDelete, "/api/offers/delete", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodPost, "/api/offers/delete/confirm", "", true)
	assert.Equal(t, http.StatusConflict, rec.Code, "cancelled request cannot be confirmed")
	assert.Empty(t, s.backend.deletedCoupons)

	rec = s.do(http.MethodPost, "/api/offers/c1/delete", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pending := decode[struct {
		View string   `json:"view"`
		IDs  []string `json:"ids"`
	}](t, rec)
	assert.Equal(t, []string{"c1"}, pending.IDs)
	assert.Empty(t, s.backend.deletedCoupons, "nothing is deleted before confirmation")

	rec = s.do(http.MethodPost, "/api/offers/delete/confirm", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[struct {
		Deleted string                          `json:"deleted"`
		Page    listengine.Page[coupons.Coupon] `json:"page"`
	}](t, rec)
	assert.Equal(t, "c1", result.Deleted)
	assert.Equal(t, 1, result.Page.TotalItems)
	assert.Equal(t, []string{"c1"}, s.backend.deletedCoupons)

	rec = s.do(http.MethodPost, "/api/offers/delete/confirm", "", true)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []string{"c1"}, s.backend.deletedCoupons)
}

func TestProductsPageMountsCatalog(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/products", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	model := decode[struct {
		Page string `json:"page"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Data struct {
			List listengine.Page[products.Product] `json:"list"`
		} `json:"data"`
	}](t, rec)
	assert.Equal(t, "products", model.Page)
	assert.Equal(t, "admin", model.User.ID)
	assert.Equal(t, 20, model.Data.List.TotalItems)
	assert.Equal(t, 3, model.Data.List.TotalPages)
	assert.Len(t, model.Data.List.Items, 8)
}

func TestCouponValidationReturnsFields(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/offers", `{"code":"ab","discount_value":0,"max_uses":0}`, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	body := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, rec)
	assert.Contains(t, body.Fields, "code")
	assert.Contains(t, body.Fields, "discount_value")
	assert.Contains(t, body.Fields, "max_uses")
}

func TestLoginSetsCookieAndLogoutClearsIt(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", `{"email":" admin@example.com ","password":"secret123"}`, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Greater(t, cookies[0].MaxAge, 0)
	resp := decode[sessionResponse](t, rec)
	assert.Equal(t, cookies[0].Value, resp.AccessToken)
	assert.Equal(t, "sess-login", resp.SessionID)

	s.token = resp.AccessToken
	rec = s.do(http.MethodPost, "/api/auth/logout", "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestNewsletterExportDownload(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/newsletter?status=Pending", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[listengine.Page[newsletter.Subscriber]](t, rec).TotalItems)

	rec = s.do(http.MethodGet, "/api/newsletter/export", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "newsletter_emails.csv")
	assert.Equal(t, "1", rec.Header().Get("X-Export-Count"))
	assert.Contains(t, rec.Body.String(), "bo@example.com")
	assert.NotContains(t, rec.Body.String(), "ana@example.com")
}

func TestOrderInvoiceDownload(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/orders", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[listengine.Page[struct {
		ID string `json:"id"`
	}]](t, rec)
	require.NotEmpty(t, page.Items)

	rec = s.do(http.MethodGet, "/api/orders/"+page.Items[0].ID+"/invoice", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = s.do(http.MethodGet, "/api/orders/missing/invoice", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, "/api/orders/"+page.Items[0].ID+"/status", `{"status":"lost"}`, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRespondErrorMapsSentinels(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err    error
		status int
	}{
		"missing session": {err: usecase.ErrMissingSession, status: http.StatusUnauthorized},
		"unauthorized":    {err: fmt.Errorf("list: %w", port.ErrBackendUnauthorized), status: http.StatusUnauthorized},
		"forbidden":       {err: port.ErrBackendForbidden, status: http.StatusForbidden},
		"not found":       {err: usecase.ErrRecordNotFound, status: http.StatusNotFound},
		"no pending":      {err: usecase.ErrNoPendingDelete, status: http.StatusConflict},
		"nothing":         {err: usecase.ErrNothingSelected, status: http.StatusBadRequest},
		"failure":         {err: fmt.Errorf("delete: %w", port.ErrBackendFailure), status: http.StatusBadGateway},
		"timeout":         {err: fmt.Errorf("list: %w", context.DeadlineExceeded), status: http.StatusGatewayTimeout},
		"unknown":         {err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	e := echo.New()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/test", nil), rec)
			require.NoError(t, respondError(c, tc.err))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
