// internal/handler/message_handler.go
package handler

import (
	"errors"
	"net/http"

	"dm-service/internal/middleware"
	"dm-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageService service.MessageService
	userService    service.UserService
}

func NewMessageHandler(messageService service.MessageService, userService service.UserService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		userService:    userService,
	}
}

type SendMessageRequest struct {
	Text  string  `json:"text"`
	Image *string `json:"image"`
}

// SendMessage godoc
// @Summary      메시지 전송
// @Description  상대방에게 메시지를 전송합니다 (text 또는 image 중 하나는 필수)
// @Tags         message
// @Accept       json
// @Produce      json
// @Param        id path string true "Receiver User ID" example:"550e8400-e29b-41d4-a716-446655440000"
// @Param        request body SendMessageRequest true "메시지 내용"
// @Success      201 {object} model.Message
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /messages/send/{id} [post]
// @Security     BearerAuth
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	receiverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receiver ID"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.SendMessage(userID, receiverID, req.Text, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrSelfMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrBlocked):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrReceiverNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages godoc
// @Summary      대화 조회
// @Description  특정 사용자와의 메시지를 시간순으로 조회합니다
// @Tags         message
// @Produce      json
// @Param        id path string true "Partner User ID" example:"550e8400-e29b-41d4-a716-446655440000"
// @Success      200 {array} model.Message
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /messages/{id} [get]
// @Security     BearerAuth
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	partnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	messages, err := h.messageService.GetConversation(userID, partnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetChatPartners godoc
// @Summary      대화 상대 목록
// @Description  메시지를 주고받은 사용자 목록을 최신 대화순으로 조회합니다
// @Tags         message
// @Produce      json
// @Success      200 {array} UserSummary
// @Failure      401 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /messages/chats [get]
// @Security     BearerAuth
func (h *MessageHandler) GetChatPartners(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	partners, err := h.messageService.GetChatPartners(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToUserSummaries(partners))
}

// GetUserByUsername godoc
// @Summary      사용자 검색
// @Description  username으로 사용자의 공개 프로필을 조회합니다
// @Tags         message
// @Produce      json
// @Param        username path string true "Username" example:"jane"
// @Success      200 {object} UserSummary
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /messages/username/{username} [get]
// @Security     BearerAuth
func (h *MessageHandler) GetUserByUsername(c *gin.Context) {
	_, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToUserSummary(user))
}

// GetContacts godoc
// @Summary      전체 연락처 목록
// @Description  본인을 제외한 모든 사용자의 공개 프로필을 조회합니다
// @Tags         message
// @Produce      json
// @Success      200 {array} UserSummary
// @Failure      401 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /messages/contacts [get]
// @Security     BearerAuth
func (h *MessageHandler) GetContacts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contacts, err := h.userService.ListContacts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToUserSummaries(contacts))
}
