package router

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/infrastructure/ratelimit"
)

// SetupChatRouter mounts the assistant. Streaming works anonymously; the
// conversation history needs a login.
func SetupChatRouter(e *echo.Echo, d Deps) {
	h := d.Handlers.Chat

	e.GET("/v1/chat/quick-options", h.QuickOptions)
	e.POST("/v1/chat/stream", h.Stream,
		d.Auth.OptionalAuth,
		middleware.RateLimit(d.Limiter, ratelimit.ActionChatStream),
	)

	conversations := e.Group("/v1/chat/conversations", d.Auth.Authenticate)
	conversations.POST("", h.CreateConversation)
	conversations.GET("", h.ListConversations)
	conversations.GET("/:id/messages", h.GetMessages)
	conversations.DELETE("/:id", h.DeleteConversation)
}
