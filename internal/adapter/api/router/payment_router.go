package router

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/infrastructure/ratelimit"
)

func SetupPaymentRouter(e *echo.Echo, d Deps) {
	h := d.Handlers.Payment

	payments := e.Group("/v1/payments", d.Auth.Authenticate)
	payments.GET("/history", h.History)

	// order creation and verification share the payment budget
	limited := payments.Group("", middleware.RateLimit(d.Limiter, ratelimit.ActionPayment))
	limited.POST("/orders", h.CreateOrder)
	limited.POST("/checkout", h.Checkout)
	limited.POST("/verify", h.Verify)
	limited.POST("/failure", h.ReportFailure)
}
