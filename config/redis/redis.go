// github.com/petersfiske/booking/config/redis/redis.go
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/petersfiske/booking/logger"
)

// Connect opens the Redis connection that backs the booking record store.
// The URL comes from the validated process configuration, so callers never
// reach here with an empty value.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.InfoLogger.Info("Connected to Redis")
	return client, nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.ErrorLogger.Errorf("Error closing Redis connection: %v", err)
		return
	}
	logger.InfoLogger.Info("Redis connection closed")
}
