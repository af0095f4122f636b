package handler

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/usecase"
	"gmrportal/pkg/response"
	"gmrportal/pkg/utils"
)

type ServiceRequestHandler struct {
	requestUseCase *usecase.ServiceRequestUseCase
}

func NewServiceRequestHandler(requestUseCase *usecase.ServiceRequestUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{
		requestUseCase: requestUseCase,
	}
}

type createRequestRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

// Create answers 201 for a new request and 200 with the dashboard redirect
// when one is already active.
func (h *ServiceRequestHandler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.requestUseCase.RequestService(c.Request().Context(), middleware.UID(c), req.ServiceID)
	if err != nil {
		return response.Error(c, err)
	}

	if result.Created {
		return response.Created(c, result)
	}
	return response.Success(c, result)
}

func (h *ServiceRequestHandler) ListMine(c echo.Context) error {
	reqs, err := h.requestUseCase.ListMine(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	page, total := utils.Window(reqs, pagination)
	return response.Paginated(c, page, total, pagination.Page, pagination.PageSize)
}

func (h *ServiceRequestHandler) Get(c echo.Context) error {
	req, err := h.requestUseCase.Get(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, req)
}

func (h *ServiceRequestHandler) Stats(c echo.Context) error {
	stats, err := h.requestUseCase.Stats(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

func (h *ServiceRequestHandler) Cancel(c echo.Context) error {
	req, err := h.requestUseCase.Cancel(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, req)
}
