package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"go-gin-event-ticketing/config"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis returns a client that has answered PING.
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	logger.WithComponent("database").Info("redis connected", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return rdb, nil
}
