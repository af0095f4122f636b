package handler

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/usecase"
	"gmrportal/pkg/response"
)

// NotificationHandler serves the dashboard's recent-activity list. Live
// updates go over the websocket.
type NotificationHandler struct {
	requestUseCase *usecase.ServiceRequestUseCase
}

func NewNotificationHandler(requestUseCase *usecase.ServiceRequestUseCase) *NotificationHandler {
	return &NotificationHandler{requestUseCase: requestUseCase}
}

func (h *NotificationHandler) Recent(c echo.Context) error {
	items, err := h.requestUseCase.Recent(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}
