package repository

import (
	"context"

	"gmrportal/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error)
	Touch(ctx context.Context, id string) error
	// Delete removes the conversation together with its messages.
	Delete(ctx context.Context, id string) error

	AddMessage(ctx context.Context, msg *entity.ChatMessage) error
	ListMessages(ctx context.Context, conversationID string) ([]*entity.ChatMessage, error)
}
