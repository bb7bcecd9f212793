// internal/model/message.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is one direct message between two users. Immutable once created;
// a conversation is the set of messages where {sender, receiver} = {A, B}
// in either order. At least one of Text / Image must be set.
type Message struct {
	MessageID  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"messageId"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_sender_created" json:"senderId"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index:idx_receiver_created" json:"receiverId"`
	Text       string    `gorm:"type:text" json:"text,omitempty"`
	Image      *string   `gorm:"type:text" json:"image,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_sender_created;index:idx_receiver_created" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
