package entity

import "time"

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type Conversation struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Title     string    `json:"title" firestore:"title"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type ChatMessage struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	Role           ChatRole  `json:"role" firestore:"role"`
	Content        string    `json:"content" firestore:"content"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
