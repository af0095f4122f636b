package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gmrportal/internal/domain/notify"
	"gmrportal/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Subscriber hands out per-user change event channels.
type Subscriber interface {
	Subscribe(userID string) (<-chan notify.Event, func())
}

// Client is one open socket. A user may hold several (one per tab).
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	mu     sync.Mutex
	closed bool
	stop   func()
}

func newClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		stop:   func() {},
	}
}

// enqueue never blocks; a full or closed client drops the message.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stop()
	close(c.Send)
}

// Manager tracks open sockets and feeds each one its owner's notifications.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	subscriber Subscriber
	ctx        context.Context
}

func NewManager(subscriber Subscriber) *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		subscriber: subscriber,
		ctx:        context.Background(),
	}
}

// Start runs the registration loop until ctx is done, then closes every client.
func (m *Manager) Start(ctx context.Context) {
	m.ctx = ctx
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if m.clients[client.UserID] == nil {
					m.clients[client.UserID] = make(map[*Client]struct{})
				}
				m.clients[client.UserID][client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: user=%s client=%s", client.UserID, client.ID)

			case client := <-m.Unregister:
				m.remove(client)
				logger.Debug("WebSocket client unregistered: user=%s client=%s", client.UserID, client.ID)

			case <-ctx.Done():
				m.mutex.Lock()
				for userID, set := range m.clients {
					for client := range set {
						client.close()
					}
					delete(m.clients, userID)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	if set, ok := m.clients[client.UserID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(m.clients, client.UserID)
		}
	}
	m.mutex.Unlock()
	client.close()
}

func (m *Manager) ConnectionCount(userID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients[userID])
}

// Serve registers conn for userID, subscribes it to the user's change
// events and starts its pumps. The subscription ends when the socket does.
func (m *Manager) Serve(userID string, conn *websocket.Conn) *Client {
	client := newClient(userID, conn)

	ctx, cancel := context.WithCancel(m.ctx)
	events, unsubscribe := m.subscriber.Subscribe(userID)
	client.stop = func() {
		cancel()
		unsubscribe()
	}

	select {
	case m.Register <- client:
	case <-m.ctx.Done():
		client.close()
		conn.Close()
		return client
	}

	bridge := notify.NewBridge(
		func(n notify.Notification) {
			m.sendToClient(client, NewMessage(MessageTypeNotification, n))
		},
		func() {
			m.sendToClient(client, NewMessage(MessageTypeRefresh, nil))
		},
	)
	go func() {
		_ = bridge.Run(ctx, events)
	}()

	go client.ReadPump(m)
	go client.WritePump()

	m.sendToClient(client, NewMessage(MessageTypeConnected, map[string]string{"client_id": client.ID}))
	return client
}

// ReadPump only services keepalives; clients do not send commands.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.ctx.Done():
			c.close()
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for user %s: %v", c.UserID, err)
			}
			return
		}
		m.HandleClientMessage(c, message)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket write error for user %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
