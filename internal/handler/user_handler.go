// internal/handler/user_handler.go
package handler

import (
	"errors"
	"net/http"

	"dm-service/internal/middleware"
	"dm-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type BlockUserRequest struct {
	BlockUserID string `json:"blockUserId" binding:"required"`
}

type UnblockUserRequest struct {
	UnblockUserID string `json:"unblockUserId" binding:"required"`
}

// Check godoc
// @Summary      인증 확인
// @Description  현재 세션의 사용자 프로필을 반환합니다
// @Tags         auth
// @Produce      json
// @Success      200 {object} ProfileResponse
// @Failure      401 {object} map[string]string
// @Router       /auth/check [get]
// @Security     BearerAuth
func (h *UserHandler) Check(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToProfileResponse(profile))
}

// BlockUser godoc
// @Summary      사용자 차단
// @Description  대상 사용자를 차단하고, 온라인이면 차단 알림을 전송합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body BlockUserRequest true "차단할 사용자"
// @Success      200 {object} map[string]ProfileResponse
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /auth/block [post]
// @Security     BearerAuth
func (h *UserHandler) BlockUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blockUserID, err := uuid.Parse(req.BlockUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	profile, err := h.userService.BlockUser(userID, blockUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfBlock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ToProfileResponse(profile)})
}

// UnblockUser godoc
// @Summary      사용자 차단 해제
// @Description  대상 사용자의 차단을 해제합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UnblockUserRequest true "차단 해제할 사용자"
// @Success      200 {object} map[string]ProfileResponse
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /auth/unblock [post]
// @Security     BearerAuth
func (h *UserHandler) UnblockUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UnblockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unblockUserID, err := uuid.Parse(req.UnblockUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	profile, err := h.userService.UnblockUser(userID, unblockUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ToProfileResponse(profile)})
}
