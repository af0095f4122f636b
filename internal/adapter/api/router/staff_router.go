package router

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/infrastructure/ratelimit"
)

// SetupStaffRouter mounts the CA/admin queue. Every route needs a staff role.
func SetupStaffRouter(e *echo.Echo, d Deps) {
	h := d.Handlers.Staff

	staff := e.Group("/v1/staff")
	staff.Use(d.Auth.Authenticate)
	staff.Use(d.Roles.StaffOnly)

	staff.GET("/requests", h.ListRequests)
	staff.GET("/stats", h.Stats)
	staff.PATCH("/requests/:id", h.UpdateRequest)
	staff.POST("/requests/:id/assign", h.AssignToMe)
	staff.POST("/requests/:id/deliverable", h.UploadDeliverable, middleware.RateLimit(d.Limiter, ratelimit.ActionUpload))
}
