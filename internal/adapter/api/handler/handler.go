package handler

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/usecase"
	ws "gmrportal/internal/infrastructure/websocket"
	"gmrportal/pkg/errors"
)

// Handlers groups every HTTP handler the routers mount.
type Handlers struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Request      *ServiceRequestHandler
	Staff        *StaffHandler
	Document     *DocumentHandler
	Payment      *PaymentHandler
	Chat         *ChatHandler
	Contact      *ContactHandler
	Notification *NotificationHandler
	WebSocket    *WebSocketHandler
	Health       *HealthHandler
}

type Dependencies struct {
	Auth           *usecase.AuthUseCase
	Catalog        *usecase.CatalogUseCase
	Requests       *usecase.ServiceRequestUseCase
	Documents      *usecase.DocumentUseCase
	Payments       *usecase.PaymentUseCase
	Chat           *usecase.ChatUseCase
	Contact        *usecase.ContactUseCase
	WSManager      *ws.Manager
	AllowedOrigins []string
	MaxUploadBytes int64
}

func New(deps Dependencies) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(deps.Auth),
		Catalog:      NewCatalogHandler(deps.Catalog),
		Request:      NewServiceRequestHandler(deps.Requests),
		Staff:        NewStaffHandler(deps.Requests, deps.Documents, deps.MaxUploadBytes),
		Document:     NewDocumentHandler(deps.Documents, deps.MaxUploadBytes),
		Payment:      NewPaymentHandler(deps.Payments),
		Chat:         NewChatHandler(deps.Chat),
		Contact:      NewContactHandler(deps.Contact),
		Notification: NewNotificationHandler(deps.Requests),
		WebSocket:    NewWebSocketHandler(deps.WSManager, deps.AllowedOrigins),
		Health:       NewHealthHandler(deps.Auth),
	}
}

// bindAndValidate is the Bind + Validate pair every JSON handler starts with.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	return c.Validate(req)
}
