package config

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// ConnectRedis leaves RedisClient nil when Redis is unreachable; callers then run without cache.
func ConnectRedis(ctx context.Context, logger *zap.Logger) {
	var opt *redis.Options
	if AppConfig.RedisURL != "" {
		parsed, err := redis.ParseURL(AppConfig.RedisURL)
		if err != nil {
			logger.Warn("failed to parse redis url, running without cache", zap.Error(err))
			return
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     AppConfig.RedisAddr,
			Password: AppConfig.RedisPassword,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis connection failed, running without cache", zap.Error(err))
		_ = client.Close()
		return
	}

	RedisClient = client
	logger.Info("redis connected", zap.String("addr", opt.Addr))
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
