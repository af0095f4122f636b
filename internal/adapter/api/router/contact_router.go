package router

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/infrastructure/ratelimit"
)

func SetupContactRouter(e *echo.Echo, d Deps) {
	e.POST("/v1/contact", d.Handlers.Contact.Submit, middleware.RateLimit(d.Limiter, ratelimit.ActionContact))
}
