// internal/client/flow.go
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var ErrEmptyMessage = errors.New("message must contain text or an image")

// Entry is one message in a conversation view. While the server has not yet
// confirmed an outgoing message, TempID is set and Message holds the local
// stub; once confirmed, TempID is empty and Message is the server record.
type Entry struct {
	TempID  string
	Message Message
}

// Pending reports whether the entry is an unconfirmed local stub.
func (e Entry) Pending() bool {
	return e.TempID != ""
}

// appendPending, confirmEntry and revertEntry are the reconciliation steps of
// the optimistic send flow, kept as pure functions over the entry list.

func appendPending(entries []Entry, stub Entry) []Entry {
	return append(entries, stub)
}

// confirmEntry removes the stub matched by tempID and appends the confirmed
// message, which may carry a different identifier and timestamp than the stub.
func confirmEntry(entries []Entry, tempID string, confirmed Message) []Entry {
	out := removeEntry(entries, tempID)
	return append(out, Entry{Message: confirmed})
}

// revertEntry removes the stub; nothing of the failed send remains.
func revertEntry(entries []Entry, tempID string) []Entry {
	return removeEntry(entries, tempID)
}

func removeEntry(entries []Entry, tempID string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.TempID == tempID {
			continue
		}
		out = append(out, e)
	}
	return out
}

var tempSeq atomic.Int64

func nextTempID() string {
	return fmt.Sprintf("temp-%d-%d", time.Now().UnixMilli(), tempSeq.Add(1))
}

// Conversation is the message list for one open chat partner, with the
// optimistic lifecycle of outgoing messages handled internally.
type Conversation struct {
	client    *Client
	selfID    string
	partnerID string

	mu      sync.Mutex
	entries []Entry
}

func NewConversation(c *Client, selfID, partnerID string) *Conversation {
	return &Conversation{
		client:    c,
		selfID:    selfID,
		partnerID: partnerID,
	}
}

func (cv *Conversation) PartnerID() string { return cv.partnerID }

// Load replaces the local view with the persisted conversation history.
func (cv *Conversation) Load(ctx context.Context) error {
	messages, err := cv.client.GetMessages(ctx, cv.partnerID)
	if err != nil {
		return err
	}

	entries := make([]Entry, len(messages))
	for i, m := range messages {
		entries[i] = Entry{Message: m}
	}

	cv.mu.Lock()
	cv.entries = entries
	cv.mu.Unlock()
	return nil
}

// Send runs the optimistic flow: an empty message is rejected before any
// network call; otherwise a stub appears immediately and is reconciled with
// the HTTP response — replaced by the confirmed message on success, removed
// on failure. Failures are terminal for this send; there is no retry.
func (cv *Conversation) Send(ctx context.Context, text string, image *string) (*Message, error) {
	if text == "" && image == nil {
		return nil, ErrEmptyMessage
	}

	tempID := nextTempID()
	stub := Entry{
		TempID: tempID,
		Message: Message{
			MessageID:  tempID,
			SenderID:   cv.selfID,
			ReceiverID: cv.partnerID,
			Text:       text,
			Image:      image,
			CreatedAt:  time.Now(),
		},
	}

	cv.mu.Lock()
	cv.entries = appendPending(cv.entries, stub)
	cv.mu.Unlock()

	confirmed, err := cv.client.SendMessage(ctx, cv.partnerID, text, image)

	cv.mu.Lock()
	defer cv.mu.Unlock()
	if err != nil {
		cv.entries = revertEntry(cv.entries, tempID)
		return nil, err
	}

	cv.entries = confirmEntry(cv.entries, tempID, *confirmed)
	return confirmed, nil
}

// appendIncoming adds a pushed message from the partner to the view.
func (cv *Conversation) appendIncoming(message Message) {
	cv.mu.Lock()
	cv.entries = append(cv.entries, Entry{Message: message})
	cv.mu.Unlock()
}

// Entries returns a copy of the current view.
func (cv *Conversation) Entries() []Entry {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	out := make([]Entry, len(cv.entries))
	copy(out, cv.entries)
	return out
}
