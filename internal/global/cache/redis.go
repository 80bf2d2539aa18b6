package cache

import (
	"campus-connect/config"
	"campus-connect/internal/global/logger"
	"campus-connect/internal/global/sentry/tracing"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client 全局 Redis 客户端，未配置 Redis 时为 nil，调用方需判空
var Client *redis.Client

func Init() {
	cfg := config.Get()
	if cfg.Redis.Host == "" {
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if tracing.IsEnabled() {
		Client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Client.Ping(ctx).Err(); err != nil {
		// 缓存不可用不阻塞启动，相关读路径直接回源
		logger.New("Cache").Warn("Redis 连接失败，缓存已禁用", "error", err)
		Client = nil
	}
}

// Delete 删除缓存键，客户端未初始化时为空操作
func Delete(ctx context.Context, keys ...string) {
	if Client == nil {
		return
	}
	Client.Del(ctx, keys...)
}
