package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/domain"
	newsletter "storeAdmin/internal/modules/newsletter/domain"
	orders "storeAdmin/internal/modules/orders/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/httputil"
)

var errorMapper = httputil.NewErrorMapper().
	WithMapping(usecase.ErrMissingSession, http.StatusUnauthorized, "authentication required").
	WithMapping(auth.ErrMissingToken, http.StatusUnauthorized, "authentication required").
	WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token").
	WithMapping(port.ErrInvalidCredentials, http.StatusUnauthorized, "").
	WithMapping(port.ErrBackendUnauthorized, http.StatusUnauthorized, "session expired").
	WithMapping(port.ErrBackendForbidden, http.StatusForbidden, "forbidden").
	WithMapping(port.ErrBackendNotFound, http.StatusNotFound, "resource not found").
	WithMapping(usecase.ErrRecordNotFound, http.StatusNotFound, "").
	WithMapping(usecase.ErrViewNotMounted, http.StatusNotFound, "").
	WithMapping(usecase.ErrNoPendingDelete, http.StatusConflict, "").
	WithMapping(usecase.ErrNothingSelected, http.StatusBadRequest, "").
	WithMapping(newsletter.ErrNothingToExport, http.StatusBadRequest, "").
	WithMapping(domain.ErrUnknownTimeFilter, http.StatusBadRequest, "").
	WithMapping(orders.ErrUnknownStatus, http.StatusUnprocessableEntity, "").
	WithMapping(port.ErrIdentityFailure, http.StatusBadGateway, "identity service unavailable").
	WithMapping(port.ErrBackendFailure, http.StatusBadGateway, "backend unavailable")

// respondError writes err as a JSON error body. Echo errors raised while binding pass through.
func respondError(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	info := errorMapper.Map(err)
	attrs := []any{
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.Int("status", info.Status),
		slog.String("reqID", c.Response().Header().Get(echo.HeaderXRequestID)),
		slog.Any("error", err),
	}
	if info.Status >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}
	return c.JSON(info.Status, info)
}

// sessionOf returns the session attached by the auth middleware.
func sessionOf(c echo.Context) (auth.Session, error) {
	session, ok := auth.SessionFrom(c)
	if !ok {
		return auth.Session{}, usecase.ErrMissingSession
	}
	return session, nil
}
