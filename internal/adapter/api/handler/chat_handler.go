package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/domain/service"
	"gmrportal/internal/usecase"
	"gmrportal/pkg/logger"
	"gmrportal/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type streamRequest struct {
	ConversationID string             `json:"conversation_id"`
	Messages       []service.ChatTurn `json:"messages" validate:"max=50"`
}

func (h *ChatHandler) QuickOptions(c echo.Context) error {
	return response.Success(c, h.chatUseCase.QuickOptions())
}

// Stream relays the completion as text/event-stream. Errors before the
// first byte go out as regular JSON errors; after that the stream just ends.
func (h *ChatHandler) Stream(c echo.Context) error {
	var req streamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	chatStream, err := h.chatUseCase.OpenStream(c.Request().Context(), usecase.StreamInput{
		UserID:         middleware.UID(c),
		ConversationID: req.ConversationID,
		Messages:       req.Messages,
	})
	if err != nil {
		return response.Error(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)

	if _, err := chatStream.Relay(res, res.Flush); err != nil {
		logger.LogRequestError(res.Header().Get(echo.HeaderXRequestID), "chat_stream", err)
	}
	return nil
}

func (h *ChatHandler) CreateConversation(c echo.Context) error {
	conv, err := h.chatUseCase.CreateConversation(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, conv)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	convs, err := h.chatUseCase.ListConversations(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, convs)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	msgs, err := h.chatUseCase.GetMessages(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, msgs)
}

func (h *ChatHandler) DeleteConversation(c echo.Context) error {
	if err := h.chatUseCase.DeleteConversation(c.Request().Context(), middleware.UID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Conversation deleted"})
}
