package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	coupons "storeAdmin/internal/modules/coupons/domain"
	"storeAdmin/internal/modules/dashboard/application/port"
	messages "storeAdmin/internal/modules/messages/domain"
	newsletter "storeAdmin/internal/modules/newsletter/domain"
	products "storeAdmin/internal/modules/products/domain"
	settings "storeAdmin/internal/modules/settings/domain"
)

const (
	productsPath       = "/api/ecommerce/products"
	addProductPath     = "/api/ecommerce/products/add-product"
	couponsPath        = "/api/coupons/get-coupons"
	addCouponPath      = "/api/coupons/add-coupon"
	deleteCouponPath   = "/api/coupons/delete-coupon"
	subscribersPath    = "/api/newsletter/emails"
	messagesPath       = "/api/messages/get-messages"
	readMessagePath    = "/api/messages/read-message"
	deleteMessagePath  = "/api/messages/delete-message"
	accountSettingPath = "/api/settings/account-settings"
)

// BackendHTTPClient implements port.Backend against the store REST API.
type BackendHTTPClient struct {
	rest    *RESTClient
	timeout time.Duration
}

func NewBackendHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *BackendHTTPClient {
	return &BackendHTTPClient{rest: NewRESTClient(baseURL, timeout, client), timeout: timeoutOrDefault(timeout)}
}

func (c *BackendHTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *BackendHTTPClient) ListProducts(ctx context.Context, token string) ([]products.Product, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendJSON(ctx, http.MethodGet, productsPath, token, nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	items := products.BuildProductList(payload)
	slog.Debug("products fetched", slog.Int("count", len(items)))
	return items, nil
}

// CreateProduct returns nil when the backend acknowledges without echoing the product.
func (c *BackendHTTPClient) CreateProduct(ctx context.Context, token string, submission products.ProductSubmission) (*products.Product, error) {
	form, err := encodeProduct(submission)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendMultipart(ctx, http.MethodPost, addProductPath, token, form)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return detailOrNil(products.BuildProductDetail(payload)), nil
}

func (c *BackendHTTPClient) UpdateProduct(ctx context.Context, token, id string, submission products.ProductSubmission) (*products.Product, error) {
	form, err := encodeProduct(submission)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendMultipart(ctx, http.MethodPut, resourcePath(productsPath, id), token, form)
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return detailOrNil(products.BuildProductDetail(payload)), nil
}

func (c *BackendHTTPClient) DeleteProducts(ctx context.Context, token string, ids []string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if _, err := c.rest.SendJSON(ctx, http.MethodDelete, productsPath, token, map[string]any{"ids": ids}); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}

func (c *BackendHTTPClient) ListCoupons(ctx context.Context, token string) ([]coupons.Coupon, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendJSON(ctx, http.MethodGet, couponsPath, token, nil)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return coupons.BuildCouponList(payload), nil
}

func (c *BackendHTTPClient) CreateCoupon(ctx context.Context, token string, request coupons.CouponRequest) (*coupons.Coupon, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendJSON(ctx, http.MethodPost, addCouponPath, token, request)
	if err != nil {
		return nil, fmt.Errorf("create coupon %s: %w", request.Code, err)
	}
	return detailOrNil(coupons.BuildCouponDetail(payload)), nil
}

func (c *BackendHTTPClient) DeleteCoupon(ctx context.Context, token, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if _, err := c.rest.SendJSON(ctx, http.MethodDelete, deleteCouponPath, token, map[string]string{"id": id}); err != nil {
		return fmt.Errorf("delete coupon %s: %w", id, err)
	}
	return nil
}

func (c *BackendHTTPClient) ListSubscribers(ctx context.Context, token string) ([]newsletter.Subscriber, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendJSON(ctx, http.MethodGet, subscribersPath, token, nil)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return newsletter.BuildSubscriberList(payload), nil
}

func (c *BackendHTTPClient) ListMessages(ctx context.Context, token string) ([]messages.Message, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendJSON(ctx, http.MethodGet, messagesPath, token, nil)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages.BuildMessageList(payload), nil
}

func (c *BackendHTTPClient) MarkMessageRead(ctx context.Context, token, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if _, err := c.rest.SendJSON(ctx, http.MethodPut, readMessagePath, token, map[string]string{"messageId": id}); err != nil {
		return fmt.Errorf("mark message %s read: %w", id, err)
	}
	return nil
}

func (c *BackendHTTPClient) DeleteMessage(ctx context.Context, token, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if _, err := c.rest.SendJSON(ctx, http.MethodDelete, resourcePath(deleteMessagePath, id), token, nil); err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return nil
}

func (c *BackendHTTPClient) GetAccountSettings(ctx context.Context, token string) (settings.AccountSettings, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	payload, err := c.rest.SendJSON(ctx, http.MethodGet, accountSettingPath, token, nil)
	if err != nil {
		return settings.AccountSettings{}, fmt.Errorf("get account settings: %w", err)
	}
	profile, _ := settings.NormalizeAccountSettings(payload)
	return profile, nil
}

// UpdateAccountSettings sends multipart when an image is attached and JSON otherwise. A zero
// result means the backend did not echo the saved settings.
func (c *BackendHTTPClient) UpdateAccountSettings(ctx context.Context, token string, update settings.Update) (settings.AccountSettings, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	var (
		payload any
		err     error
	)
	if update.HasImage() {
		form, encodeErr := encodeAccountSettings(update)
		if encodeErr != nil {
			return settings.AccountSettings{}, encodeErr
		}
		payload, err = c.rest.SendMultipart(ctx, http.MethodPut, accountSettingPath, token, form)
	} else {
		payload, err = c.rest.SendJSON(ctx, http.MethodPut, accountSettingPath, token, update)
	}
	if err != nil {
		return settings.AccountSettings{}, fmt.Errorf("update account settings: %w", err)
	}
	profile, ok := settings.NormalizeAccountSettings(payload)
	if !ok || (profile.Email == "" && profile.DisplayName == "") {
		return settings.AccountSettings{}, nil
	}
	return profile, nil
}

func resourcePath(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(strings.TrimSpace(id))
}

func detailOrNil[T any](value *T, ok bool) *T {
	if !ok {
		return nil
	}
	return value
}

var _ port.Backend = (*BackendHTTPClient)(nil)
