package router

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/handler"
	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/infrastructure/ratelimit"
)

// Deps is everything the route tables need.
type Deps struct {
	Handlers *handler.Handlers
	Auth     *middleware.AuthMiddleware
	Roles    *middleware.RoleMiddleware
	Limiter  *ratelimit.RateLimiter
}

func Setup(e *echo.Echo, d Deps) {
	SetupHealthRouter(e, d)
	SetupAuthRouter(e, d)
	SetupCatalogRouter(e, d)
	SetupRequestRouter(e, d)
	SetupStaffRouter(e, d)
	SetupPaymentRouter(e, d)
	SetupChatRouter(e, d)
	SetupContactRouter(e, d)
	SetupWebSocketRouter(e, d)
}
