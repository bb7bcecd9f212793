// internal/repository/message_repository.go
package repository

import (
	"dm-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	CreateMessage(message *model.Message) error
	GetMessageByID(messageID uuid.UUID) (*model.Message, error)
	GetConversation(userID, partnerID uuid.UUID) ([]model.Message, error)
	GetChatPartnerIDs(userID uuid.UUID) ([]uuid.UUID, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateMessage(message *model.Message) error {
	if message.MessageID == uuid.Nil {
		message.MessageID = uuid.New()
	}
	return r.db.Create(message).Error
}

func (r *messageRepository) GetMessageByID(messageID uuid.UUID) (*model.Message, error) {
	var message model.Message
	err := r.db.First(&message, "message_id = ?", messageID).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversation returns all messages between the two users in either
// direction, oldest first.
func (r *messageRepository) GetConversation(userID, partnerID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, partnerID, partnerID, userID).
		Order("created_at ASC").
		Find(&messages).Error

	return messages, err
}

// GetChatPartnerIDs returns the distinct counterparties the user has exchanged
// messages with, most recent conversation first.
func (r *messageRepository) GetChatPartnerIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	type partnerRow struct {
		PartnerID uuid.UUID
	}

	var rows []partnerRow
	err := r.db.Raw(`
		SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS partner_id,
		       MAX(created_at) AS last_at
		FROM messages
		WHERE sender_id = ? OR receiver_id = ?
		GROUP BY partner_id
		ORDER BY last_at DESC`,
		userID, userID, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PartnerID)
	}
	return ids, nil
}
