package handler

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/usecase"
	"gmrportal/pkg/logger"
	"gmrportal/pkg/response"
)

// StaffHandler serves the CA/admin queue.
type StaffHandler struct {
	requestUseCase  *usecase.ServiceRequestUseCase
	documentUseCase *usecase.DocumentUseCase
	maxUploadBytes  int64
}

func NewStaffHandler(requestUseCase *usecase.ServiceRequestUseCase, documentUseCase *usecase.DocumentUseCase, maxUploadBytes int64) *StaffHandler {
	return &StaffHandler{
		requestUseCase:  requestUseCase,
		documentUseCase: documentUseCase,
		maxUploadBytes:  maxUploadBytes,
	}
}

type staffUpdateRequest struct {
	Status   string   `json:"status" validate:"omitempty,oneof=pending in_progress in-progress completed cancelled paid"`
	Progress *int     `json:"progress"`
	Notes    *string  `json:"notes" validate:"omitempty,max=2000"`
	Amount   *float64 `json:"amount"`
}

func (h *StaffHandler) ListRequests(c echo.Context) error {
	rows, err := h.requestUseCase.ListAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rows)
}

func (h *StaffHandler) Stats(c echo.Context) error {
	counts, err := h.requestUseCase.StaffStats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, counts)
}

func (h *StaffHandler) UpdateRequest(c echo.Context) error {
	var req staffUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.requestUseCase.StaffUpdate(c.Request().Context(), c.Param("id"), usecase.StaffUpdateInput{
		Status:   req.Status,
		Progress: req.Progress,
		Notes:    req.Notes,
		Amount:   req.Amount,
	})
	if err != nil {
		return response.Error(c, err)
	}

	logger.Info("%s", logger.WithRequest(c.Param("id"), "updated by %s", middleware.UID(c)))
	return response.Success(c, result)
}

func (h *StaffHandler) AssignToMe(c echo.Context) error {
	req, err := h.requestUseCase.AssignToMe(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"request": req,
		"message": "Request assigned to you",
	})
}

func (h *StaffHandler) UploadDeliverable(c echo.Context) error {
	in, closeFile, err := formUpload(c, h.maxUploadBytes)
	if err != nil {
		return response.Error(c, err)
	}
	defer closeFile()

	doc, err := h.documentUseCase.UploadDeliverable(c.Request().Context(), middleware.UID(c), c.Param("id"), in)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]interface{}{
		"document": doc,
		"message":  "Document uploaded successfully",
	})
}
