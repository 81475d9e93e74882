package pkg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/cache"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

// NewCacheService uses Redis when REDIS_URL is set and an in-process store otherwise.
// The returned close func is never nil.
func NewCacheService(cfg *config.Config, logger *slog.Logger) (cache.CacheService, func() error, error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, responses are kept in memory")
		return cache.NewMemoryCache(), func() error { return nil }, nil
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisCache(client, logger), client.Close, nil
}
