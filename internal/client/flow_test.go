package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmEntry_ReplacesStubWithServerRecord(t *testing.T) {
	stub := Entry{
		TempID:  "temp-1",
		Message: Message{MessageID: "temp-1", Text: "hello"},
	}
	entries := appendPending(nil, stub)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Pending())

	confirmed := Message{MessageID: "srv-1", Text: "hello"}
	entries = confirmEntry(entries, "temp-1", confirmed)

	require.Len(t, entries, 1)
	assert.False(t, entries[0].Pending())
	assert.Equal(t, "srv-1", entries[0].Message.MessageID)
}

func TestRevertEntry_LeavesNoTrace(t *testing.T) {
	existing := Entry{Message: Message{MessageID: "srv-0", Text: "earlier"}}
	stub := Entry{TempID: "temp-1", Message: Message{MessageID: "temp-1"}}

	entries := appendPending([]Entry{existing}, stub)
	entries = revertEntry(entries, "temp-1")

	require.Len(t, entries, 1)
	assert.Equal(t, "srv-0", entries[0].Message.MessageID)
}

func TestConfirmEntry_OnlyTouchesMatchingStub(t *testing.T) {
	first := Entry{TempID: "temp-1", Message: Message{MessageID: "temp-1", Text: "one"}}
	second := Entry{TempID: "temp-2", Message: Message{MessageID: "temp-2", Text: "two"}}

	entries := appendPending(appendPending(nil, first), second)
	entries = confirmEntry(entries, "temp-1", Message{MessageID: "srv-1", Text: "one"})

	require.Len(t, entries, 2)
	assert.True(t, entries[0].Pending(), "unrelated stub must stay pending")
	assert.Equal(t, "temp-2", entries[0].TempID)
	assert.Equal(t, "srv-1", entries[1].Message.MessageID)
}

func TestNextTempID_Unique(t *testing.T) {
	a := nextTempID()
	b := nextTempID()
	assert.True(t, strings.HasPrefix(a, "temp-"))
	assert.NotEqual(t, a, b)
}

func TestConversation_SendRejectsEmptyBeforeNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("empty message must not reach the server")
	}))
	defer server.Close()

	cv := NewConversation(New(server.URL, "token", time.Second), "self", "partner")

	_, err := cv.Send(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, cv.Entries())
}

func TestConversation_SendConfirmsOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/messages/send/partner", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Message{
			MessageID:  "srv-1",
			SenderID:   "self",
			ReceiverID: "partner",
			Text:       req.Text,
			CreatedAt:  time.Now().UTC(),
		})
	}))
	defer server.Close()

	cv := NewConversation(New(server.URL, "token", time.Second), "self", "partner")

	confirmed, err := cv.Send(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "srv-1", confirmed.MessageID)

	entries := cv.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Pending())
	assert.Equal(t, "srv-1", entries[0].Message.MessageID)
}

func TestConversation_SendRevertsOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "You are blocked by this user"})
	}))
	defer server.Close()

	cv := NewConversation(New(server.URL, "token", time.Second), "self", "partner")

	_, err := cv.Send(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Empty(t, cv.Entries(), "failed send must leave no stub behind")
}

func TestConversation_LoadReplacesView(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/messages/partner", r.URL.Path)
		json.NewEncoder(w).Encode([]Message{
			{MessageID: "srv-1", SenderID: "partner", ReceiverID: "self", Text: "old"},
			{MessageID: "srv-2", SenderID: "self", ReceiverID: "partner", Text: "new"},
		})
	}))
	defer server.Close()

	cv := NewConversation(New(server.URL, "token", time.Second), "self", "partner")
	cv.appendIncoming(Message{MessageID: "stale"})

	require.NoError(t, cv.Load(context.Background()))

	entries := cv.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "srv-1", entries[0].Message.MessageID)
	assert.Equal(t, "srv-2", entries[1].Message.MessageID)
}
