package websocket

import (
	"encoding/json"
	"time"

	"gmrportal/pkg/logger"
)

const (
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
	MessageTypeConnected    = "connected"
	MessageTypeNotification = "notification"
	MessageTypeRefresh      = "refresh"
	MessageTypeError        = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func NewMessage(msgType string, data interface{}) WSMessage {
	return WSMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// HandleClientMessage answers application-level pings. Anything else is an error.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.sendToClient(client, NewMessage(MessageTypeError, map[string]string{"error": "Invalid message format"}))
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.sendToClient(client, NewMessage(MessageTypePong, map[string]string{"status": "alive"}))
	default:
		m.sendToClient(client, NewMessage(MessageTypeError, map[string]string{"error": "Unknown message type"}))
	}
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Error("WebSocket: failed to marshal %s message for user %s: %v", message.Type, client.UserID, err)
		return
	}

	if !client.enqueue(payload) {
		logger.Warn("WebSocket: dropped %s message for user %s", message.Type, client.UserID)
	}
}
