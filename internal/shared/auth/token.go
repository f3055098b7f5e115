package auth

import (
	"net/http"
	"strings"
)

// DefaultCookieName is the cookie carrying the access token for browser sessions.
const DefaultCookieName = "sb-access-token"

// ExtractBearerToken extracts the JWT token from the Authorization header.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader extracts the JWT token from an Authorization header value.
// It handles the "Bearer " prefix and returns an empty string if no token is present.
//
// Example:
//
//	token := ExtractBearerTokenFromHeader("Bearer eyJhbGciOiJIUzI1NiIs...")
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const bearerPrefix = "bearer "
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ExtractTokenFromCookie reads the access token cookie.
func ExtractTokenFromCookie(r *http.Request, cookieName string) string {
	if r == nil {
		return ""
	}
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// ExtractTokenFromQuery extracts a token from a URL query parameter.
func ExtractTokenFromQuery(r *http.Request, paramName string) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(paramName))
}

// ExtractToken attempts to extract a token from multiple sources in order:
// 1. Authorization header (Bearer token)
// 2. Session cookie
// 3. "token" query parameter (websocket clients cannot set headers)
//
// Returns the first non-empty token found.
func ExtractToken(r *http.Request, cookieName string) string {
	if token := ExtractBearerToken(r); token != "" {
		return token
	}
	if token := ExtractTokenFromCookie(r, cookieName); token != "" {
		return token
	}
	return ExtractTokenFromQuery(r, "token")
}
