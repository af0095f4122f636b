package router

import (
	"github.com/labstack/echo/v4"
)

// SetupCatalogRouter mounts the public, read-only catalog.
func SetupCatalogRouter(e *echo.Echo, d Deps) {
	h := d.Handlers.Catalog

	catalog := e.Group("/v1/catalog")
	catalog.GET("/services", h.ListServices)
	catalog.GET("/services/:id", h.GetService)
	catalog.GET("/services/:id/quote", h.Quote)
	catalog.GET("/categories", h.ListCategories)
	catalog.GET("/practice-areas", h.ListPracticeAreas)
	catalog.GET("/practice-areas/:id", h.GetPracticeArea)
}
