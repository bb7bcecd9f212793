package handler

import (
	"net/http/httptest"
	"strings"

	"dm-service/internal/model"
	"dm-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MockMessageService struct {
	SendMessageFunc     func(senderID, receiverID uuid.UUID, text string, image *string) (*model.Message, error)
	GetConversationFunc func(userID, partnerID uuid.UUID) ([]model.Message, error)
	GetChatPartnersFunc func(userID uuid.UUID) ([]model.User, error)
}

func (m *MockMessageService) SendMessage(senderID, receiverID uuid.UUID, text string, image *string) (*model.Message, error) {
	return m.SendMessageFunc(senderID, receiverID, text, image)
}

func (m *MockMessageService) GetConversation(userID, partnerID uuid.UUID) ([]model.Message, error) {
	return m.GetConversationFunc(userID, partnerID)
}

func (m *MockMessageService) GetChatPartners(userID uuid.UUID) ([]model.User, error) {
	return m.GetChatPartnersFunc(userID)
}

type MockUserService struct {
	GetProfileFunc        func(userID uuid.UUID) (*service.Profile, error)
	GetUserByUsernameFunc func(username string) (*model.User, error)
	ListContactsFunc      func(userID uuid.UUID) ([]model.User, error)
	BlockUserFunc         func(userID, blockUserID uuid.UUID) (*service.Profile, error)
	UnblockUserFunc       func(userID, unblockUserID uuid.UUID) (*service.Profile, error)
}

func (m *MockUserService) GetProfile(userID uuid.UUID) (*service.Profile, error) {
	return m.GetProfileFunc(userID)
}

func (m *MockUserService) GetUserByUsername(username string) (*model.User, error) {
	return m.GetUserByUsernameFunc(username)
}

func (m *MockUserService) ListContacts(userID uuid.UUID) ([]model.User, error) {
	return m.ListContactsFunc(userID)
}

func (m *MockUserService) BlockUser(userID, blockUserID uuid.UUID) (*service.Profile, error) {
	return m.BlockUserFunc(userID, blockUserID)
}

func (m *MockUserService) UnblockUser(userID, unblockUserID uuid.UUID) (*service.Profile, error) {
	return m.UnblockUserFunc(userID, unblockUserID)
}

// setupRouter builds a gin engine with the caller's identity already resolved,
// standing in for the auth middleware.
func setupRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	return r
}

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
