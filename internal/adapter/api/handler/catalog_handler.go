package handler

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/usecase"
	"gmrportal/pkg/response"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *CatalogHandler) ListServices(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.ListServices(c.QueryParam("category")))
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.ListCategories())
}

func (h *CatalogHandler) GetService(c echo.Context) error {
	svc, err := h.catalogUseCase.GetService(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, svc)
}

func (h *CatalogHandler) Quote(c echo.Context) error {
	quote, err := h.catalogUseCase.Quote(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, quote)
}

func (h *CatalogHandler) ListPracticeAreas(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.ListPracticeAreas())
}

func (h *CatalogHandler) GetPracticeArea(c echo.Context) error {
	area, err := h.catalogUseCase.GetPracticeArea(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, area)
}
