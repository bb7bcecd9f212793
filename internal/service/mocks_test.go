package service

import (
	"dm-service/internal/model"

	"github.com/google/uuid"
)

type MockMessageRepository struct {
	CreateMessageFunc     func(message *model.Message) error
	GetMessageByIDFunc    func(messageID uuid.UUID) (*model.Message, error)
	GetConversationFunc   func(userID, partnerID uuid.UUID) ([]model.Message, error)
	GetChatPartnerIDsFunc func(userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *MockMessageRepository) CreateMessage(message *model.Message) error {
	return m.CreateMessageFunc(message)
}

func (m *MockMessageRepository) GetMessageByID(messageID uuid.UUID) (*model.Message, error) {
	return m.GetMessageByIDFunc(messageID)
}

func (m *MockMessageRepository) GetConversation(userID, partnerID uuid.UUID) ([]model.Message, error) {
	return m.GetConversationFunc(userID, partnerID)
}

func (m *MockMessageRepository) GetChatPartnerIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	return m.GetChatPartnerIDsFunc(userID)
}

type MockUserRepository struct {
	GetUserByIDFunc       func(userID uuid.UUID) (*model.User, error)
	GetUserByUsernameFunc func(username string) (*model.User, error)
	GetUsersByIDsFunc     func(userIDs []uuid.UUID) ([]model.User, error)
	ListContactsFunc      func(excludeUserID uuid.UUID) ([]model.User, error)
	BlockFunc             func(blockerID, blockedID uuid.UUID) error
	UnblockFunc           func(blockerID, blockedID uuid.UUID) error
	GetBlockedIDsFunc     func(blockerID uuid.UUID) ([]uuid.UUID, error)
	IsBlockedEitherFunc   func(userID, otherID uuid.UUID) (bool, error)
}

func (m *MockUserRepository) GetUserByID(userID uuid.UUID) (*model.User, error) {
	return m.GetUserByIDFunc(userID)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*model.User, error) {
	return m.GetUserByUsernameFunc(username)
}

func (m *MockUserRepository) GetUsersByIDs(userIDs []uuid.UUID) ([]model.User, error) {
	return m.GetUsersByIDsFunc(userIDs)
}

func (m *MockUserRepository) ListContacts(excludeUserID uuid.UUID) ([]model.User, error) {
	return m.ListContactsFunc(excludeUserID)
}

func (m *MockUserRepository) Block(blockerID, blockedID uuid.UUID) error {
	return m.BlockFunc(blockerID, blockedID)
}

func (m *MockUserRepository) Unblock(blockerID, blockedID uuid.UUID) error {
	return m.UnblockFunc(blockerID, blockedID)
}

func (m *MockUserRepository) GetBlockedIDs(blockerID uuid.UUID) ([]uuid.UUID, error) {
	return m.GetBlockedIDsFunc(blockerID)
}

func (m *MockUserRepository) IsBlockedEither(userID, otherID uuid.UUID) (bool, error) {
	return m.IsBlockedEitherFunc(userID, otherID)
}

type mockDeliverer struct {
	delivered []*model.Message
}

func (m *mockDeliverer) Deliver(message *model.Message) {
	m.delivered = append(m.delivered, message)
}

type blockedCall struct {
	blockedID  uuid.UUID
	byUserID   uuid.UUID
	byUsername string
}

type mockNotifier struct {
	calls []blockedCall
}

func (m *mockNotifier) NotifyBlocked(blockedID, byUserID uuid.UUID, byUsername string) {
	m.calls = append(m.calls, blockedCall{blockedID: blockedID, byUserID: byUserID, byUsername: byUsername})
}
