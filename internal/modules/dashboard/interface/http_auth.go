package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/modules/dashboard/infrastructure"
	"storeAdmin/internal/shared/auth"
)

type authHandlers struct {
	auth       *usecase.AuthUseCase
	hub        *infrastructure.Hub
	cookieName string
	secure     bool
	now        func() time.Time
}

type credentialsRequest struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	DisplayName string `json:"display_name" form:"display_name"`
}

type sessionResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
	SessionID   string          `json:"sessionId"`
	UserID      string          `json:"userId"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	State       domain.AppState `json:"state"`
}

func (h *authHandlers) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.SignIn(c.Request().Context(), port.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return respondError(c, err)
	}
	return h.establish(c, result)
}

func (h *authHandlers) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.Register(c.Request().Context(), port.Registration{
		Credentials: port.Credentials{Email: req.Email, Password: req.Password},
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.establish(c, result)
}

func (h *authHandlers) logout(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	h.auth.SignOut(session)
	closed := 0
	if h.hub != nil {
		closed = h.hub.CloseSession(session.ID())
	}
	c.SetCookie(auth.SessionCookie(h.cookieName, "", -1, h.secure))
	slog.Info("logout", slog.String("sessionId", session.ID()), slog.Int("closedConnections", closed))
	return c.NoContent(http.StatusNoContent)
}

func (h *authHandlers) state(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.response(session, port.AuthSession{}))
}

func (h *authHandlers) establish(c echo.Context, result usecase.SignInResult) error {
	maxAge := 0
	if !result.Auth.ExpiresAt.IsZero() {
		maxAge = max(0, int(result.Auth.ExpiresAt.Sub(h.now()).Seconds()))
	}
	c.SetCookie(auth.SessionCookie(h.cookieName, result.Session.Token, maxAge, h.secure))
	auth.WithSession(c, result.Session)
	return c.JSON(http.StatusOK, h.response(result.Session, result.Auth))
}

func (h *authHandlers) response(session auth.Session, issued port.AuthSession) sessionResponse {
	resp := sessionResponse{
		AccessToken: session.Token,
		SessionID:   session.ID(),
		UserID:      session.UserID(),
		State:       h.auth.State(session),
	}
	if session.Claims != nil {
		resp.Email = session.Claims.Email
		resp.DisplayName = session.Claims.DisplayName()
	}
	if !issued.ExpiresAt.IsZero() {
		expires := issued.ExpiresAt.UTC()
		resp.ExpiresAt = &expires
	} else if session.Claims != nil && session.Claims.ExpiresAt != nil {
		expires := session.Claims.ExpiresAt.UTC()
		resp.ExpiresAt = &expires
	}
	return resp
}
