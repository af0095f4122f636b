package router

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, d Deps) {
	h := d.Handlers.Auth
	limited := middleware.RateLimit(d.Limiter, ratelimit.ActionAuth)

	public := e.Group("/v1/auth", limited)
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	public.POST("/refresh", h.RefreshToken)

	e.GET("/v1/auth/me", h.Me, d.Auth.Authenticate)
}
