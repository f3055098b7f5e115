package port

import (
	"context"
	"errors"

	coupons "storeAdmin/internal/modules/coupons/domain"
	messages "storeAdmin/internal/modules/messages/domain"
	newsletter "storeAdmin/internal/modules/newsletter/domain"
	products "storeAdmin/internal/modules/products/domain"
	settings "storeAdmin/internal/modules/settings/domain"
)

var (
	ErrBackendUnauthorized = errors.New("backend rejected the access token")
	ErrBackendForbidden    = errors.New("backend access forbidden")
	ErrBackendNotFound     = errors.New("backend resource not found")
	ErrBackendFailure      = errors.New("backend request failed")
)

// Backend is the remote REST API the dashboard manages. Every call carries the session's
// access token.
type Backend interface {
	ListProducts(ctx context.Context, token string) ([]products.Product, error)
	CreateProduct(ctx context.Context, token string, submission products.ProductSubmission) (*products.Product, error)
	UpdateProduct(ctx context.Context, token, id string, submission products.ProductSubmission) (*products.Product, error)
	DeleteProducts(ctx context.Context, token string, ids []string) error

	ListCoupons(ctx context.Context, token string) ([]coupons.Coupon, error)
	CreateCoupon(ctx context.Context, token string, request coupons.CouponRequest) (*coupons.Coupon, error)
	DeleteCoupon(ctx context.Context, token, id string) error

	ListSubscribers(ctx context.Context, token string) ([]newsletter.Subscriber, error)

	ListMessages(ctx context.Context, token string) ([]messages.Message, error)
	MarkMessageRead(ctx context.Context, token, id string) error
	DeleteMessage(ctx context.Context, token, id string) error

	GetAccountSettings(ctx context.Context, token string) (settings.AccountSettings, error)
	UpdateAccountSettings(ctx context.Context, token string, update settings.Update) (settings.AccountSettings, error)
}
