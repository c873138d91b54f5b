package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/majifix/service-request/internal/config"
)

const redisPingTimeout = 3 * time.Second

// Redis wraps the go-redis client that backs the ticket-code counter.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects the counter backend. An unreachable Redis is logged but
// not fatal; code minting fails per request until it comes back, everything
// else keeps serving.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("ticket counter backend unreachable",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("ticket counter backend connected", zap.String("addr", cfg.Addr))
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
