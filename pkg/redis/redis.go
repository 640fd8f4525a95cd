package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/config"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

func routeSheetKey(courseID uint, date string) string {
	return fmt.Sprintf("routesheet:%d:%s", courseID, date)
}

// CacheRouteSheet stores a pre-built route sheet JSON for a course and date
func CacheRouteSheet(ctx context.Context, courseID uint, date string, payload []byte, ttl time.Duration) error {
	if err := client.Set(ctx, routeSheetKey(courseID, date), payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache route sheet", err, map[string]interface{}{
			"course_id": courseID,
			"date":      date,
		})
		return err
	}
	return nil
}

// GetRouteSheet returns a cached route sheet, or nil when there is no entry
func GetRouteSheet(ctx context.Context, courseID uint, date string) ([]byte, error) {
	val, err := client.Get(ctx, routeSheetKey(courseID, date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read cached route sheet", err, map[string]interface{}{
			"course_id": courseID,
			"date":      date,
		})
		return nil, err
	}
	return val, nil
}

// InvalidateRouteSheet drops a cached route sheet after schedule edits
func InvalidateRouteSheet(ctx context.Context, courseID uint, date string) error {
	return client.Del(ctx, routeSheetKey(courseID, date)).Err()
}
