// internal/database/redis.go
package database

import (
	"context"
	"log"

	"dm-service/internal/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis initializes the Redis connection. Redis is optional here: it only
// mirrors push events for sibling services, so a nil client is tolerated
// everywhere downstream.
func InitRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.URL == "" {
		log.Println("REDIS_URL not set, event mirroring disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Printf("Failed to parse REDIS_URL: %v", err)
		return nil
	}

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return nil
	}

	return client
}
