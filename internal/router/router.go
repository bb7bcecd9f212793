package router

import (
	"dm-service/internal/config"
	"dm-service/internal/handler"
	"dm-service/internal/middleware"
	"dm-service/internal/repository"
	"dm-service/internal/service"
	"dm-service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.MetricsMiddleware())

	// Initialize repositories
	messageRepo := repository.NewMessageRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize validator
	validator := middleware.NewAuthServiceValidator(cfg.Auth.ServiceURL, cfg.Auth.SecretKey, logger)

	// Initialize realtime core
	registry := ws.NewRegistry(logger)
	delivery := ws.NewDelivery(registry, redisClient, logger)
	wsHandler := ws.NewHandler(logger, validator, registry)

	// Initialize services
	messageService := service.NewMessageService(messageRepo, userRepo, delivery, logger)
	userService := service.NewUserService(userRepo, delivery, logger)

	// Initialize handlers
	messageHandler := handler.NewMessageHandler(messageService, userService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Health endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", middleware.MetricsHandler())

	// WebSocket endpoint (identity resolved at connection open)
	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		authenticated := api.Group("")
		authenticated.Use(middleware.AuthMiddleware(validator))
		{
			// Auth routes (credential issuance lives in the auth service)
			authenticated.GET("/auth/check", userHandler.Check)
			authenticated.POST("/auth/block", userHandler.BlockUser)
			authenticated.POST("/auth/unblock", userHandler.UnblockUser)

			// Message routes (static routes must come before dynamic routes)
			authenticated.GET("/messages/contacts", messageHandler.GetContacts)
			authenticated.GET("/messages/chats", messageHandler.GetChatPartners)
			authenticated.GET("/messages/username/:username", messageHandler.GetUserByUsername)
			authenticated.GET("/messages/:id", messageHandler.GetMessages)
			authenticated.POST("/messages/send/:id", messageHandler.SendMessage)
		}
	}

	return r
}
