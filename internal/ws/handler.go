// internal/ws/handler.go
package ws

import (
	"context"
	"net/http"
	"time"

	"dm-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type Handler struct {
	logger    *zap.Logger
	validator middleware.TokenValidator
	registry  *Registry
}

func NewHandler(logger *zap.Logger, validator middleware.TokenValidator, registry *Registry) *Handler {
	return &Handler{
		logger:    logger,
		validator: validator,
		registry:  registry,
	}
}

// HandleWebSocket godoc
// @Summary      WebSocket 연결
// @Description  실시간 이벤트 스트림에 연결합니다 (온라인 사용자, 새 메시지, 차단 알림)
// @Tags         websocket
// @Param        token query string false "JWT Access Token (또는 jwt 쿠키)"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} map[string]string
// @Router       /ws [get]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	// Identity is resolved once, here. The socket carries the same token as
	// HTTP requests; an invalid token never reaches the registry.
	token := middleware.ExtractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID, err := h.validator.ValidateToken(ctx, token)
	if err != nil {
		h.logger.Warn("Rejected websocket connection", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	conn := newConn(userID, sock)

	h.registry.Register(conn)
	middleware.RecordWebSocketConnection()

	go conn.writePump()
	conn.readPump()

	h.registry.Unregister(conn)
	conn.close()
	middleware.RecordWebSocketDisconnection()
}
