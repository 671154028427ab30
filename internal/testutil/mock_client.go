// Package testutil provides shared test doubles.
package testutil

import (
	"sync"

	"github.com/Fesius1/Grand/internal/protocol"
)

// MockClient implements types.ClientInterface and records every
// message sent to it.
type MockClient struct {
	ID string

	mu       sync.Mutex
	name     string
	avatar   string
	room     string
	closed   bool
	messages []*protocol.Message
}

// NewMockClient creates a mock client with an ID and display name.
func NewMockClient(id, name string) *MockClient {
	return &MockClient{ID: id, name: name}
}

func (c *MockClient) GetID() string { return c.ID }

func (c *MockClient) GetName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *MockClient) SetName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

func (c *MockClient) GetAvatar() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.avatar
}

func (c *MockClient) SetAvatar(avatar string) {
	c.mu.Lock()
	c.avatar = avatar
	c.mu.Unlock()
}

func (c *MockClient) GetRoom() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *MockClient) SetRoom(code string) {
	c.mu.Lock()
	c.room = code
	c.mu.Unlock()
}

func (c *MockClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}

func (c *MockClient) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Closed reports whether Close was called.
func (c *MockClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Messages returns a snapshot of everything sent so far.
func (c *MockClient) Messages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*protocol.Message(nil), c.messages...)
}

// MessagesOfType filters recorded messages by type.
func (c *MockClient) MessagesOfType(t protocol.MessageType) []*protocol.Message {
	var out []*protocol.Message
	for _, msg := range c.Messages() {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

// LastOfType returns the newest message of a type, or nil.
func (c *MockClient) LastOfType(t protocol.MessageType) *protocol.Message {
	msgs := c.MessagesOfType(t)
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}
