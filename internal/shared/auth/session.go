package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const sessionContextKey = "storeadmin.session"

// Session is the authenticated user attached to a request.
type Session struct {
	Token  string
	Claims *Claims
}

// ID identifies the session for per-session view state.
func (s Session) ID() string {
	if s.Claims == nil {
		return ""
	}
	return s.Claims.SessionID
}

// UserID is the identity-service subject.
func (s Session) UserID() string {
	if s.Claims == nil {
		return ""
	}
	return s.Claims.Subject
}

// MiddlewareConfig tunes RequireSession.
type MiddlewareConfig struct {
	CookieName string
	// LoginPath receives unauthenticated page requests.
	LoginPath string
	// APIPrefix marks JSON routes that answer 401 instead of redirecting.
	APIPrefix string
	// Skip lists paths reachable without a session.
	Skip []string
}

// RequireSession validates the access token of every request not listed in Skip. Page routes
// without a valid session are redirected to the login page; API routes get a 401 response.
func RequireSession(validator TokenValidator, cfg MiddlewareConfig) echo.MiddlewareFunc {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/"
	}
	skip := make(map[string]struct{}, len(cfg.Skip)+1)
	skip[cfg.LoginPath] = struct{}{}
	for _, path := range cfg.Skip {
		skip[path] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if _, ok := skip[path]; ok {
				return next(c)
			}

			token := ExtractToken(c.Request(), cfg.CookieName)
			claims, err := validator.Validate(token)
			if err != nil {
				if strings.HasPrefix(path, cfg.APIPrefix) {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return c.Redirect(http.StatusSeeOther, cfg.LoginPath)
			}

			c.Set(sessionContextKey, Session{Token: token, Claims: claims})
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(c echo.Context) (Session, bool) {
	session, ok := c.Get(sessionContextKey).(Session)
	return session, ok && session.Token != ""
}

// WithSession stores session on the context. Handlers outside RequireSession use it after sign in.
func WithSession(c echo.Context, session Session) {
	c.Set(sessionContextKey, session)
}

// SessionCookie builds the HTTP-only cookie carrying token. A negative maxAge clears it.
func SessionCookie(name, token string, maxAge int, secure bool) *http.Cookie {
	if name == "" {
		name = DefaultCookieName
	}
	return &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
