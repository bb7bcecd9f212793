// internal/ws/delivery.go
package ws

import (
	"context"
	"fmt"

	"dm-service/internal/middleware"
	"dm-service/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Delivery pushes events to a single receiver's live connection. Every push
// is best-effort: the message itself is already durable by the time Deliver
// runs, only the live notification can be lost. An offline receiver is the
// normal case, not an error — they pick the message up on their next fetch.
type Delivery struct {
	registry *Registry
	redis    *redis.Client
	logger   *zap.Logger
}

func NewDelivery(registry *Registry, redisClient *redis.Client, logger *zap.Logger) *Delivery {
	return &Delivery{
		registry: registry,
		redis:    redisClient,
		logger:   logger,
	}
}

// Deliver pushes the persisted message to the receiver's connection, if any.
func (d *Delivery) Deliver(message *model.Message) {
	payload, err := encodeEvent(EventNewMessage, message)
	if err != nil {
		d.logger.Error("Failed to encode message event", zap.Error(err))
		return
	}

	d.mirror(message.ReceiverID, payload)

	conn, ok := d.registry.Lookup(message.ReceiverID)
	if !ok {
		d.logger.Debug("Receiver offline, skipping push",
			zap.String("receiverId", message.ReceiverID.String()))
		return
	}

	if conn.push(payload) {
		middleware.RecordMessageDelivered()
	} else {
		d.logger.Warn("Dropped message push, send buffer full",
			zap.String("receiverId", message.ReceiverID.String()))
	}
}

// NotifyBlocked pushes a one-shot blocked event to the blocked user. Dropped
// silently when they are offline; the persisted relation is what enforces the
// block, this is only a courtesy to their UI.
func (d *Delivery) NotifyBlocked(blockedID, byUserID uuid.UUID, byUsername string) {
	payload, err := encodeEvent(EventYouAreBlocked, BlockedPayload{
		ByUser: PublicUser{
			UserID:   byUserID.String(),
			Username: byUsername,
		},
	})
	if err != nil {
		d.logger.Error("Failed to encode blocked event", zap.Error(err))
		return
	}

	d.mirror(blockedID, payload)

	conn, ok := d.registry.Lookup(blockedID)
	if !ok {
		return
	}
	conn.push(payload)
}

// mirror republishes the event on a per-user Redis channel so sibling
// services (e.g. a notification service) can observe it. Best-effort.
func (d *Delivery) mirror(userID uuid.UUID, payload []byte) {
	if d.redis == nil {
		return
	}

	channel := fmt.Sprintf("events:user:%s", userID.String())
	if err := d.redis.Publish(context.Background(), channel, payload).Err(); err != nil {
		d.logger.Warn("Failed to mirror event to redis",
			zap.String("channel", channel),
			zap.Error(err))
	}
}
