// internal/ws/conn.go
package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 256
)

// Conn is one live transport session bound to an authenticated user. It is
// owned by the Registry from Register until Unregister; the connection ID is
// what distinguishes a stale session from its replacement.
type Conn struct {
	id        uuid.UUID
	userID    uuid.UUID
	createdAt time.Time

	sock *websocket.Conn

	// mu guards send against close: a Deliver may hold a reference from a
	// Lookup while the handler goroutine tears the connection down.
	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newConn(userID uuid.UUID, sock *websocket.Conn) *Conn {
	return &Conn{
		id:        uuid.New(),
		userID:    userID,
		createdAt: time.Now(),
		sock:      sock,
		send:      make(chan []byte, sendBufferSize),
	}
}

func (c *Conn) ID() uuid.UUID     { return c.id }
func (c *Conn) UserID() uuid.UUID { return c.userID }

// push queues a payload without blocking. A full buffer or a connection that
// has already been torn down drops the payload; every push is best-effort and
// durable state never depends on it.
func (c *Conn) push(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump consumes (and discards) inbound frames to service pong handling
// and to detect the close. Clients send messages over HTTP, not the socket.
func (c *Conn) readPump() {
	defer c.sock.Close()

	c.sock.SetReadLimit(maxMessageSize)
	c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		c.sock.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.sock.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.sock.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.sock.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
