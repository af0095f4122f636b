package router

import (
	"github.com/labstack/echo/v4"
)

func SetupHealthRouter(e *echo.Echo, d Deps) {
	h := d.Handlers.Health
	e.GET("/health", h.CheckHealth)
	e.GET("/health/firebase", h.CheckFirebaseHealth)
}
