package router

import (
	"github.com/labstack/echo/v4"
)

// SetupWebSocketRouter mounts the notification socket. Browsers cannot set
// headers on the upgrade, so the token may come as ?token=.
func SetupWebSocketRouter(e *echo.Echo, d Deps) {
	e.GET("/ws", d.Handlers.WebSocket.Handle, d.Auth.AuthenticateSocket)
}
