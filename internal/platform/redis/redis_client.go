package redis

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"trading_dashboard/internal/shared/env"
)

// NewRedisClient は環境変数（REDIS_HOST, REDIS_PORT, REDIS_PASSWORD）から
// Redisクライアントを構築し、Pingで接続を確認します。
func NewRedisClient() (*redis.Client, error) {
	addr := os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT")
	password := os.Getenv("REDIS_PASSWORD")

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}

// CacheTTL はリードスルーキャッシュのTTLを環境変数から読み取ります。
func CacheTTL() time.Duration {
	return env.Duration("REDIS_CACHE_TTL", 5*time.Minute)
}
