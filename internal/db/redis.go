package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/qmikke-api/internal/config"
)

// OpenRedis returns nil when no address is configured.
func OpenRedis(ctx context.Context, conf *config.RedisConfig) (*redis.Client, error) {
	if !conf.Enabled() {
		zap.L().Info("redis not configured, drafts and live feed are disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("rdb.Ping -> %w", err)
	}

	zap.L().Info("connected to redis", zap.String("addr", conf.Addr))

	return rdb, nil
}
