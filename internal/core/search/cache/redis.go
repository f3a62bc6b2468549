package cache

import (
	"context"
	"fmt"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisBackend 以 Redis 為後端的搜尋結果緩存
// 多副本部署時共用同一份緩存，TTL 由 Redis 管理。
type RedisBackend struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisBackend 創建 Redis 緩存後端
func NewRedisBackend(cfg *config.CacheConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 緩存已初始化",
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("ttl", cfg.TTL),
	)

	return &RedisBackend{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存
func (s *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return "", ErrMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis", key)
	return data, nil
}

// Set 設置緩存
func (s *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (s *RedisBackend) Close() error {
	return s.client.Close()
}
