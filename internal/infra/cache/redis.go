package cache

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/config"
)

// NewRedisClient accepts either a redis:// URL or a bare host:port.
// Returns nil when no address is configured.
func NewRedisClient(cfg *config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts := &redis.Options{Addr: cfg.RedisURL}
	if strings.Contains(cfg.RedisURL, "://") {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		opts = parsed
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// the cache degrades to the store, so an unreachable redis is not fatal
		log.Warn("redis ping failed", zap.String("addr", opts.Addr), zap.Error(err))
	} else {
		log.Info("redis connected", zap.String("addr", opts.Addr))
	}

	return client
}
