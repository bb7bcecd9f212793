// @title           DM Service API
// @version         1.0
// @description     실시간 1:1 메시징 서비스 API

// @host      localhost:8002
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"fmt"
	"log"
	"os"

	"dm-service/internal/config"
	"dm-service/internal/database"
	"dm-service/internal/router"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Starting DM Service",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env))

	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("PostgreSQL connected")

	redisClient := database.InitRedis(cfg)
	if redisClient != nil {
		logger.Info("Redis connected")
	}

	r := router.Setup(cfg, db, redisClient, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("DM Service started successfully", zap.String("address", addr))

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
