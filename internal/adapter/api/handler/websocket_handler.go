package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	ws "gmrportal/internal/infrastructure/websocket"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
	"gmrportal/pkg/response"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
	upgrader  gorillaws.Upgrader
}

func NewWebSocketHandler(wsManager *ws.Manager, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// originChecker allows requests without an Origin header (non-browser
// clients) and any origin when the list contains "*".
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Handle upgrades an authenticated request and hands the socket to the
// manager, which streams the caller's request notifications.
func (h *WebSocketHandler) Handle(c echo.Context) error {
	userID := middleware.UID(c)
	if userID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the failure response
		logger.Warn("websocket upgrade failed for %s: %v", userID, err)
		return nil
	}

	client := h.wsManager.Serve(userID, conn)
	logger.Debug("websocket client %s connected for %s", client.ID, userID)
	return nil
}
