package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storeAdmin/internal/modules/dashboard/application/port"
)

// RESTClient sends authenticated requests to the store backend and maps its status codes to
// the port errors.
type RESTClient struct {
	baseURL string
	client  *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:3000"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &RESTClient{baseURL: trimmed, client: client}
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	return http.NewRequestWithContext(ctx, method, url, body)
}

func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// SendJSON encodes body as JSON (when not nil) and decodes the response into a generic payload.
func (c *RESTClient) SendJSON(ctx context.Context, method, endpoint, token string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := c.NewRequest(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token)
}

// SendMultipart posts a form built by encodeMultipart.
func (c *RESTClient) SendMultipart(ctx context.Context, method, endpoint, token string, form *multipartBody) (any, error) {
	req, err := c.NewRequest(ctx, method, endpoint, bytes.NewReader(form.body.Bytes()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.contentType)
	return c.send(req, token)
}

func (c *RESTClient) send(req *http.Request, token string) (any, error) {
	req.Header.Set("Accept", "application/json")
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		req.Header.Set("Authorization", "Bearer "+trimmed)
	}
	slog.Debug("backend request", slog.String("method", req.Method), slog.String("url", req.URL.String()))

	res, err := c.Do(req)
	if err != nil {
		var timeout interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeout) && timeout.Timeout()) {
			slog.Warn("backend request timed out", slog.String("method", req.Method), slog.String("path", req.URL.Path))
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, context.DeadlineExceeded)
		}
		slog.Error("backend request error", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Any("error", err))
		return nil, fmt.Errorf("%s %s: %w: %v", req.Method, req.URL.Path, port.ErrBackendFailure, err)
	}
	defer res.Body.Close()
	slog.Debug("backend response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	if err := statusError(req, res); err != nil {
		return nil, err
	}
	return decodePayload(res.Body)
}

func statusError(req *http.Request, res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, port.ErrBackendUnauthorized)
	case res.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, port.ErrBackendForbidden)
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, port.ErrBackendNotFound)
	case res.StatusCode < 200 || res.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		message := strings.TrimSpace(string(body))
		slog.Error("backend unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("body", message))
		return fmt.Errorf("%s %s: %w: status %d: %s", req.Method, req.URL.Path, port.ErrBackendFailure, res.StatusCode, backendMessage(message))
	}
	return nil
}

// backendMessage extracts {"message": "..."} or {"error": "..."} from an error body.
func backendMessage(body string) string {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		for _, key := range []string{"message", "error", "msg"} {
			if value, ok := payload[key].(string); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
	}
	return body
}

func decodePayload(body io.Reader) (any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read backend response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	return payload, nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
