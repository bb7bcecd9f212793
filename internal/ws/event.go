// internal/ws/event.go
package ws

import "encoding/json"

// Server→client push event names. These are the wire contract with the web
// client; renaming them is a breaking change.
const (
	EventOnlineUsers   = "getOnlineUsers"
	EventNewMessage    = "newMessage"
	EventYouAreBlocked = "youAreBlocked"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// PublicUser is the minimal identity carried in youAreBlocked: who blocked
// you, nothing more.
type PublicUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type BlockedPayload struct {
	ByUser PublicUser `json:"byUser"`
}

func encodeEvent(eventType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Event{Type: eventType, Payload: payload})
}
