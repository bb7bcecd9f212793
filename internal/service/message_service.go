// internal/service/message_service.go
package service

import (
	"errors"
	"fmt"

	"dm-service/internal/middleware"
	"dm-service/internal/model"
	"dm-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage     = errors.New("message must contain text or an image")
	ErrBlocked          = errors.New("messaging is blocked between these users")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrSelfMessage      = errors.New("cannot send a message to yourself")
)

// Deliverer hands a persisted message to the receiver's live connection.
// Delivery is best-effort and independent of persistence, which has already
// succeeded by the time Deliver is called.
type Deliverer interface {
	Deliver(message *model.Message)
}

type MessageService interface {
	SendMessage(senderID, receiverID uuid.UUID, text string, image *string) (*model.Message, error)
	GetConversation(userID, partnerID uuid.UUID) ([]model.Message, error)
	GetChatPartners(userID uuid.UUID) ([]model.User, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	deliverer   Deliverer
	logger      *zap.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	deliverer Deliverer,
	logger *zap.Logger,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		deliverer:   deliverer,
		logger:      logger,
	}
}

func (s *messageService) SendMessage(senderID, receiverID uuid.UUID, text string, image *string) (*model.Message, error) {
	if text == "" && image == nil {
		return nil, ErrEmptyMessage
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}

	if _, err := s.userRepo.GetUserByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("failed to load receiver: %w", err)
	}

	// The durable block relation is the boundary, not the push event
	blocked, err := s.userRepo.IsBlockedEither(senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check block relation: %w", err)
	}
	if blocked {
		return nil, ErrBlocked
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Image:      image,
	}

	if err := s.messageRepo.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	middleware.RecordMessageSent()

	// Message is durable from here on; the push is only a live notification
	if s.deliverer != nil {
		s.deliverer.Deliver(message)
	}

	s.logger.Info("Message sent",
		zap.String("messageId", message.MessageID.String()),
		zap.String("senderId", senderID.String()),
		zap.String("receiverId", receiverID.String()))

	return message, nil
}

func (s *messageService) GetConversation(userID, partnerID uuid.UUID) ([]model.Message, error) {
	return s.messageRepo.GetConversation(userID, partnerID)
}

// GetChatPartners returns the users the caller has a conversation with, most
// recent conversation first.
func (s *messageService) GetChatPartners(userID uuid.UUID) ([]model.User, error) {
	partnerIDs, err := s.messageRepo.GetChatPartnerIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat partners: %w", err)
	}

	users, err := s.userRepo.GetUsersByIDs(partnerIDs)
	if err != nil {
		return nil, err
	}

	// Restore recency order lost by the IN query
	byID := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}

	ordered := make([]model.User, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}
