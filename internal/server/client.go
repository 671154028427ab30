package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one connected player: the transient session record, as
// opposed to the engine's durable Player state.
type Client struct {
	ID string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	name   string
	avatar string
	room   string
	closed bool
}

// NewClient wraps an upgraded connection.
func NewClient(s *Server, conn *websocket.Conn) *Client {
	id := uuid.New().String()
	return &Client{
		ID:     id,
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
		name:   fmt.Sprintf("Player-%s", id[:8]),
	}
}

func (c *Client) GetID() string { return c.ID }

func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Client) SetName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

func (c *Client) GetAvatar() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.avatar
}

func (c *Client) SetAvatar(avatar string) {
	c.mu.Lock()
	c.avatar = avatar
	c.mu.Unlock()
}

func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.room
}

func (c *Client) SetRoom(code string) {
	c.mu.Lock()
	c.room = code
	c.mu.Unlock()
}

// SendMessage queues a message for delivery. Slow clients are
// disconnected rather than blocking the sender.
func (c *Client) SendMessage(msg *protocol.Message) {
	data, err := protocol.Encode(msg)
	if err != nil {
		logger.LogError("encode message for %s: %v", c.ID, err)
		return
	}

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return
	}

	select {
	case c.send <- data:
	default:
		logger.LogError("client %s send buffer full, closing", c.ID)
		c.Close()
	}
}

// Close shuts the connection down once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.send)
}

// ReadPump reads messages until the connection drops and hands them
// to the message handler.
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.server.handler.HandleDisconnect(c)
		c.server.UnregisterClient(c.ID)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.LogError("read error from %s: %v", c.ID, err)
			}
			break
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logger.LogError("bad message from %s: %v", c.ID, err)
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		c.server.handler.Handle(c, msg)
	}
}

// WritePump drains the send queue and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
