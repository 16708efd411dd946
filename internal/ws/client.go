package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the wire envelope for both directions of the channel.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Conn is the subset of *websocket.Conn the client needs; tests substitute it.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// Client wraps one websocket connection. gorilla allows a single concurrent
// writer, so every write goes through the mutex.
type Client struct {
	conn Conn

	mu     sync.Mutex
	closed bool
}

func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Send(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	return c.conn.WriteJSON(Event{Event: event, Data: raw})
}

func (c *Client) Read(v *Event) error {
	return c.conn.ReadJSON(v)
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.conn.Close()
	}
}
