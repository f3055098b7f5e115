package transport

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/modules/dashboard/infrastructure"
	"storeAdmin/internal/shared/auth"
)

const clientBuffer = 16

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
}

// NewNotificationsWebsocketHandler exposes /ws/notifications. The access token comes from the
// session cookie, the Authorization header or the token query parameter, and the connection
// receives the toasts of its session plus every change event.
func NewNotificationsWebsocketHandler(hub *infrastructure.Hub, validator auth.TokenValidator, cookieName string, allowedOrigins []string) echo.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		claims, err := validator.Validate(auth.ExtractToken(c.Request(), cookieName))
		if err != nil {
			slog.Warn("notifications ws auth failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("notifications ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return err
		}

		userID := claims.Subject
		sessionID := claims.SessionID
		client := infrastructure.NewClient(hub, conn, userID, sessionID, clientBuffer)
		connectedAt := time.Now()
		client.AddCloseHook(func(c *infrastructure.Client) {
			slog.Info("notifications ws closed", slog.String("sessionId", c.SessionID()), slog.Duration("connected", time.Since(connectedAt)), slog.String("reqID", requestID))
		})
		hub.Attach(client, domain.AllTopics)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				domain.MetaSessionID: sessionID,
				domain.MetaUserID:    userID,
			},
			Data: map[string]any{
				"mode":   "notifications",
				"topics": []string{domain.AllTopics},
			},
			Timestamp: time.Now().UTC(),
		})

		slog.Info("notifications ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}
