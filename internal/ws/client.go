package ws

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

var clientSeq atomic.Uint64

// client wraps one websocket connection behind the session.Client
// interface. Writes are serialized by a mutex because gorilla/websocket
// allows only one concurrent writer.
type client struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   fmt.Sprintf("client_%d", clientSeq.Add(1)),
		conn: conn,
	}
}

func (c *client) ID() string { return c.id }

// Send delivers one outbound event envelope.
func (c *client) Send(event string, payload interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(envelope{Type: event, Data: payload})
}

func (c *client) close() {
	_ = c.conn.Close()
}

// envelope is the wire framing for both directions: a type tag plus an
// event-specific data object.
type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
