package ws

import (
	"encoding/json"
	"testing"
	"time"

	"dm-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDelivery_DeliverToOnlineReceiver(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	delivery := NewDelivery(registry, nil, zap.NewNop())

	receiverID := uuid.New()
	conn := testConn(receiverID)
	registry.Register(conn)
	drainRoster(t, conn)

	message := &model.Message{
		MessageID:  uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: receiverID,
		Text:       "hello",
		CreatedAt:  time.Now(),
	}
	delivery.Deliver(message)

	require.Equal(t, 1, pendingCount(conn))

	var event struct {
		Type    string        `json:"type"`
		Payload model.Message `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(<-conn.send, &event))
	assert.Equal(t, EventNewMessage, event.Type)
	assert.Equal(t, message.MessageID, event.Payload.MessageID)
	assert.Equal(t, "hello", event.Payload.Text)
}

func TestDelivery_OfflineReceiverIsNoop(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	delivery := NewDelivery(registry, nil, zap.NewNop())

	// Someone else is online; they must not receive a message addressed to
	// the offline user.
	bystanderID := uuid.New()
	bystander := testConn(bystanderID)
	registry.Register(bystander)
	drainRoster(t, bystander)

	delivery.Deliver(&model.Message{
		MessageID:  uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: uuid.New(),
		Text:       "nobody home",
	})

	assert.Equal(t, 0, pendingCount(bystander))
}

func TestDelivery_DeliverOnlyToLatestConnection(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	delivery := NewDelivery(registry, nil, zap.NewNop())

	receiverID := uuid.New()
	stale := testConn(receiverID)
	registry.Register(stale)
	drainRoster(t, stale)

	fresh := testConn(receiverID)
	registry.Register(fresh)
	drainRoster(t, fresh)

	delivery.Deliver(&model.Message{
		MessageID:  uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: receiverID,
		Text:       "after reconnect",
	})

	assert.Equal(t, 0, pendingCount(stale))
	assert.Equal(t, 1, pendingCount(fresh))
}

func TestDelivery_TornDownConnDropsPush(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	delivery := NewDelivery(registry, nil, zap.NewNop())

	receiverID := uuid.New()
	conn := testConn(receiverID)
	registry.Register(conn)
	drainRoster(t, conn)

	// The handler goroutine tears the connection down between the router's
	// lookup and its push; the delivery must degrade to the offline no-op.
	registry.Unregister(conn)
	conn.close()

	delivery.Deliver(&model.Message{
		MessageID:  uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: receiverID,
		Text:       "into the void",
	})
	delivery.NotifyBlocked(receiverID, uuid.New(), "alice")
}

func TestDelivery_DeliverToClosedButRegisteredConn(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	delivery := NewDelivery(registry, nil, zap.NewNop())

	receiverID := uuid.New()
	conn := testConn(receiverID)
	registry.Register(conn)
	drainRoster(t, conn)

	// Closed first, still visible to Lookup: the window where a disconnect
	// lands between the router's lookup and its push.
	conn.close()

	delivery.Deliver(&model.Message{
		MessageID:  uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: receiverID,
		Text:       "racing the disconnect",
	})
}

func TestDelivery_NotifyBlocked(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	delivery := NewDelivery(registry, nil, zap.NewNop())

	blockedID := uuid.New()
	conn := testConn(blockedID)
	registry.Register(conn)
	drainRoster(t, conn)

	blockerID := uuid.New()
	delivery.NotifyBlocked(blockedID, blockerID, "alice")

	require.Equal(t, 1, pendingCount(conn))

	var event struct {
		Type    string         `json:"type"`
		Payload BlockedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(<-conn.send, &event))
	assert.Equal(t, EventYouAreBlocked, event.Type)
	assert.Equal(t, blockerID.String(), event.Payload.ByUser.UserID)
	assert.Equal(t, "alice", event.Payload.ByUser.Username)
}

func TestDelivery_NotifyBlockedOfflineIsNoop(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	delivery := NewDelivery(registry, nil, zap.NewNop())

	// Must not panic or misroute with an empty registry.
	delivery.NotifyBlocked(uuid.New(), uuid.New(), "alice")
}
