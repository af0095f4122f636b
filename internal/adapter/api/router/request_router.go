package router

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/infrastructure/ratelimit"
)

func SetupRequestRouter(e *echo.Echo, d Deps) {
	req := d.Handlers.Request
	docs := d.Handlers.Document
	upload := middleware.RateLimit(d.Limiter, ratelimit.ActionUpload)

	requests := e.Group("/v1/requests", d.Auth.Authenticate)
	requests.POST("", req.Create)
	requests.GET("", req.ListMine)
	requests.GET("/stats", req.Stats)
	requests.GET("/:id", req.Get)
	requests.POST("/:id/cancel", req.Cancel)
	requests.POST("/:id/documents", docs.Upload, upload)
	requests.GET("/:id/documents", docs.List)
	requests.GET("/:id/deliverable", docs.DownloadDeliverable)

	documents := e.Group("/v1/documents", d.Auth.Authenticate)
	documents.DELETE("/:docId", docs.Delete)
	documents.GET("/:docId/download", docs.Download)
	documents.POST("/:docId/review", docs.Review, d.Roles.StaffOnly)

	e.GET("/v1/notifications/recent", d.Handlers.Notification.Recent, d.Auth.Authenticate)
}
