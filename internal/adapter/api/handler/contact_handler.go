package handler

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/usecase"
	"gmrportal/pkg/response"
)

type ContactHandler struct {
	contactUseCase *usecase.ContactUseCase
}

func NewContactHandler(contactUseCase *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{contactUseCase: contactUseCase}
}

// Presence is checked by the use case so every missing field gets the same
// message.
type contactRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"max=5000"`
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.contactUseCase.Submit(c.Request().Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}
