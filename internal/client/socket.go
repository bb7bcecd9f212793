// internal/client/socket.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// Event names pushed by the server.
const (
	eventOnlineUsers   = "getOnlineUsers"
	eventNewMessage    = "newMessage"
	eventYouAreBlocked = "youAreBlocked"
)

type pushEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// BlockedBy identifies who blocked the current user.
type BlockedBy struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type blockedPayload struct {
	ByUser BlockedBy `json:"byUser"`
}

// Subscription scopes newMessage handling to one open conversation. Closing
// it detaches the conversation; pushes for other partners are always ignored
// by the open view, surfaced only through the chat list refresh.
type Subscription struct {
	socket *Socket
	conv   *Conversation
}

// Close releases the subscription if it is still the active one.
func (s *Subscription) Close() {
	s.socket.mu.Lock()
	defer s.socket.mu.Unlock()
	if s.socket.active == s {
		s.socket.active = nil
	}
}

// Socket is the client side of the realtime connection: it dials with the
// same token used for HTTP and dispatches push events.
type Socket struct {
	conn *websocket.Conn

	mu          sync.Mutex
	onlineUsers []string
	active      *Subscription
	onRoster    func([]string)
	onBlocked   func(BlockedBy)

	done chan struct{}
}

// Dial opens the realtime connection. The token is the same session token
// used for HTTP requests; the server rejects the connection before any
// presence registration when it is invalid.
func Dial(ctx context.Context, baseURL, token string) (*Socket, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	s := &Socket{
		conn: conn,
		done: make(chan struct{}),
	}
	go s.listen()
	return s, nil
}

// OnRoster registers a callback for roster snapshots.
func (s *Socket) OnRoster(fn func(userIDs []string)) {
	s.mu.Lock()
	s.onRoster = fn
	s.mu.Unlock()
}

// OnBlocked registers a callback for the one-shot blocked event.
func (s *Socket) OnBlocked(fn func(by BlockedBy)) {
	s.mu.Lock()
	s.onBlocked = fn
	s.mu.Unlock()
}

// Subscribe binds incoming messages to the given conversation, replacing any
// previous subscription so listeners never leak across conversation switches.
func (s *Socket) Subscribe(conv *Conversation) *Subscription {
	sub := &Subscription{socket: s, conv: conv}
	s.mu.Lock()
	s.active = sub
	s.mu.Unlock()
	return sub
}

// OnlineUsers returns the most recent roster snapshot.
func (s *Socket) OnlineUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.onlineUsers))
	copy(out, s.onlineUsers)
	return out
}

// Done is closed when the connection ends.
func (s *Socket) Done() <-chan struct{} {
	return s.done
}

func (s *Socket) Close() error {
	return s.conn.Close()
}

func (s *Socket) listen() {
	defer close(s.done)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var event pushEvent
		if err := json.Unmarshal(data, &event); err != nil {
			continue
		}
		s.dispatch(event)
	}
}

func (s *Socket) dispatch(event pushEvent) {
	switch event.Type {
	case eventOnlineUsers:
		var ids []string
		if err := json.Unmarshal(event.Payload, &ids); err != nil {
			return
		}
		s.mu.Lock()
		s.onlineUsers = ids
		fn := s.onRoster
		s.mu.Unlock()
		if fn != nil {
			fn(ids)
		}

	case eventNewMessage:
		var message Message
		if err := json.Unmarshal(event.Payload, &message); err != nil {
			return
		}
		s.mu.Lock()
		sub := s.active
		s.mu.Unlock()
		// Only the open conversation appends; other partners' messages are
		// left to the chat list refresh
		if sub != nil && sub.conv.PartnerID() == message.SenderID {
			sub.conv.appendIncoming(message)
		}

	case eventYouAreBlocked:
		var payload blockedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return
		}
		s.mu.Lock()
		fn := s.onBlocked
		s.mu.Unlock()
		if fn != nil {
			fn(payload.ByUser)
		}
	}
}
