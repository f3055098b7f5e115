package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/shared/normalization"
)

const (
	signInPath = "/auth/v1/token?grant_type=password"
	signUpPath = "/auth/v1/signup"
)

// IdentityHTTPClient talks to the hosted identity service. The project key goes in the apikey
// header of every call.
type IdentityHTTPClient struct {
	rest    *RESTClient
	apiKey  string
	timeout time.Duration
	now     func() time.Time
}

func NewIdentityHTTPClient(baseURL, apiKey string, timeout time.Duration, client *http.Client) *IdentityHTTPClient {
	return &IdentityHTTPClient{
		rest:    NewRESTClient(baseURL, timeout, client),
		apiKey:  strings.TrimSpace(apiKey),
		timeout: timeoutOrDefault(timeout),
		now:     time.Now,
	}
}

func (c *IdentityHTTPClient) SignIn(ctx context.Context, credentials port.Credentials) (port.AuthSession, error) {
	return c.exchange(ctx, signInPath, credentials)
}

func (c *IdentityHTTPClient) SignUp(ctx context.Context, registration port.Registration) (port.AuthSession, error) {
	body := map[string]any{
		"email":    registration.Email,
		"password": registration.Password,
	}
	if registration.DisplayName != "" {
		body["data"] = map[string]string{"display_name": registration.DisplayName}
	}
	return c.exchange(ctx, signUpPath, body)
}

func (c *IdentityHTTPClient) exchange(ctx context.Context, endpoint string, body any) (port.AuthSession, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	encoded, err := json.Marshal(body)
	if err != nil {
		return port.AuthSession{}, fmt.Errorf("encode identity request: %w", err)
	}
	req, err := c.rest.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return port.AuthSession{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("identity request error", slog.String("path", req.URL.Path), slog.Any("error", err))
		return port.AuthSession{}, fmt.Errorf("%w: %v", port.ErrIdentityFailure, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return port.AuthSession{}, fmt.Errorf("%w: read response: %v", port.ErrIdentityFailure, err)
	}
	switch {
	case res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusUnauthorized:
		slog.Info("identity rejected credentials", slog.Int("status", res.StatusCode), slog.String("path", req.URL.Path))
		return port.AuthSession{}, fmt.Errorf("%w: %s", port.ErrInvalidCredentials, backendMessage(strings.TrimSpace(string(raw))))
	case res.StatusCode < 200 || res.StatusCode > 299:
		slog.Error("identity unexpected status", slog.Int("status", res.StatusCode), slog.String("path", req.URL.Path))
		return port.AuthSession{}, fmt.Errorf("%w: status %d", port.ErrIdentityFailure, res.StatusCode)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return port.AuthSession{}, fmt.Errorf("%w: decode response: %v", port.ErrIdentityFailure, err)
	}
	session := decodeAuthSession(payload, c.now())
	if session.AccessToken == "" {
		// Sign-up with email confirmation enabled returns the user without a session.
		return port.AuthSession{}, fmt.Errorf("%w: no session issued, confirm the email first", port.ErrIdentityFailure)
	}
	return session, nil
}

func decodeAuthSession(payload map[string]any, now time.Time) port.AuthSession {
	if nested, ok := payload["session"].(map[string]any); ok {
		payload = nested
	}
	session := port.AuthSession{
		AccessToken:  normalization.AsString(payload["access_token"]),
		RefreshToken: normalization.AsString(payload["refresh_token"]),
	}
	if expiresAt := normalization.AsInt(payload["expires_at"]); expiresAt > 0 {
		session.ExpiresAt = time.Unix(int64(expiresAt), 0).UTC()
	} else if expiresIn := normalization.AsInt(payload["expires_in"]); expiresIn > 0 {
		session.ExpiresAt = now.Add(time.Duration(expiresIn) * time.Second).UTC()
	}
	if user, ok := payload["user"].(map[string]any); ok {
		session.UserID = normalization.AsString(user["id"])
		session.Email = normalization.AsString(user["email"])
	}
	return session
}

var _ port.Identity = (*IdentityHTTPClient)(nil)
