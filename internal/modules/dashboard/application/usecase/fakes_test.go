package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	coupons "storeAdmin/internal/modules/coupons/domain"
	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	messages "storeAdmin/internal/modules/messages/domain"
	newsletter "storeAdmin/internal/modules/newsletter/domain"
	products "storeAdmin/internal/modules/products/domain"
	settings "storeAdmin/internal/modules/settings/domain"
	"storeAdmin/internal/shared/auth"
)

const testSecret = "test-secret"

type fakeBackend struct {
	mu sync.Mutex

	products    []products.Product
	coupons     []coupons.Coupon
	subscribers []newsletter.Subscriber
	messages    []messages.Message
	profile     settings.AccountSettings

	failWith error

	deletedProducts [][]string
	created         []products.ProductSubmission
	updated         map[string]products.ProductSubmission
	readMessages    []string
	deletedMessages []string
	deletedCoupons  []string
	settingsUpdates []settings.Update
}

func (f *fakeBackend) ListProducts(context.Context, string) ([]products.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.products), f.failWith
}

func (f *fakeBackend) CreateProduct(_ context.Context, _ string, submission products.ProductSubmission) (*products.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.created = append(f.created, submission)
	product := submission.Apply(products.Product{ID: fmt.Sprintf("new-%d", len(f.created)), CreatedAt: time.Now().UTC()})
	return &product, nil
}

func (f *fakeBackend) UpdateProduct(_ context.Context, _ string, id string, submission products.ProductSubmission) (*products.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.updated == nil {
		f.updated = make(map[string]products.ProductSubmission)
	}
	f.updated[id] = submission
	return nil, nil
}

func (f *fakeBackend) DeleteProducts(_ context.Context, _ string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.deletedProducts = append(f.deletedProducts, slices.Clone(ids))
	return nil
}

func (f *fakeBackend) ListCoupons(context.Context, string) ([]coupons.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.coupons), f.failWith
}

func (f *fakeBackend) CreateCoupon(_ context.Context, _ string, request coupons.CouponRequest) (*coupons.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	coupon := coupons.Coupon{ID: "c-" + request.Code, Code: request.Code, DiscountType: request.DiscountType, DiscountValue: request.DiscountValue, MaxUses: request.MaxUses, ValidFrom: request.ValidFrom, ValidUntil: request.ValidUntil, Theme: request.Theme, IsActive: true}
	f.coupons = append(f.coupons, coupon)
	return &coupon, nil
}

func (f *fakeBackend) DeleteCoupon(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedCoupons = append(f.deletedCoupons, id)
	return f.failWith
}

func (f *fakeBackend) ListSubscribers(context.Context, string) ([]newsletter.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.subscribers), f.failWith
}

func (f *fakeBackend) ListMessages(context.Context, string) ([]messages.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.messages), f.failWith
}

func (f *fakeBackend) MarkMessageRead(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readMessages = append(f.readMessages, id)
	return f.failWith
}

func (f *fakeBackend) DeleteMessage(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedMessages = append(f.deletedMessages, id)
	return f.failWith
}

func (f *fakeBackend) GetAccountSettings(context.Context, string) (settings.AccountSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.failWith
}

func (f *fakeBackend) UpdateAccountSettings(_ context.Context, _ string, update settings.Update) (settings.AccountSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settingsUpdates = append(f.settingsUpdates, update)
	return settings.AccountSettings{}, f.failWith
}

var _ port.Backend = (*fakeBackend)(nil)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingBroadcaster) toasts() []domain.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	var toasts []domain.Toast
	for _, msg := range r.messages {
		if toast, ok := msg.Data.(domain.Toast); ok {
			toasts = append(toasts, toast)
		}
	}
	return toasts
}

func (r *recordingBroadcaster) toastTexts() []string {
	var texts []string
	for _, toast := range r.toasts() {
		texts = append(texts, toast.Message)
	}
	return texts
}

func (r *recordingBroadcaster) lastToast(t *testing.T) domain.Toast {
	t.Helper()
	toasts := r.toasts()
	require.NotEmpty(t, toasts)
	return toasts[len(toasts)-1]
}

func signToken(t *testing.T, subject, sessionID string) string {
	t.Helper()
	claims := auth.Claims{
		SessionID: sessionID,
		Email:     subject + "@store.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func testSession(t *testing.T, sessionID string) auth.Session {
	t.Helper()
	token := signToken(t, "user-"+sessionID, sessionID)
	claims, err := auth.NewJWTValidator(testSecret).Validate(token)
	require.NoError(t, err)
	return auth.Session{Token: token, Claims: claims}
}

func catalog(n int) []products.Product {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	items := make([]products.Product, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, products.Product{
			ID:        fmt.Sprintf("p%02d", i),
			SKU:       fmt.Sprintf("SKU%06d", 100000+i),
			Name:      fmt.Sprintf("Product %02d", i),
			Price:     float64(i * 10),
			Stock:     i % 3,
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
	return items
}
