package chessbuilder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/config"
	"github.com/park285/gamehub/internal/hub"
	"github.com/park285/gamehub/internal/msgcat"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Deps struct {
	Hub     *hub.Manager
	Repo    hub.Repository
	Catalog *msgcat.Catalog
	Redis   *redis.Client // nil without REDIS_URL
}

func New(cfg *config.AppConfig, logger *zap.Logger, opts ...hub.Option) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cpuColor, ok := chess.ParseColor(cfg.CPUColor)
	if !ok {
		return nil, fmt.Errorf("invalid cpu color %q", cfg.CPUColor)
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	deps := &Deps{Catalog: cat}
	if raw := strings.TrimSpace(cfg.RedisURL); raw != "" {
		ropts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(ropts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		deps.Redis = rdb
		deps.Repo = hub.NewRedisRepository(rdb, cfg.ResultTTL())
		logger.Info("result_store", zap.String("backend", "redis"), zap.String("addr", ropts.Addr), zap.Int("db", ropts.DB))
	} else {
		deps.Repo = hub.NewMemoryRepository()
		logger.Info("result_store", zap.String("backend", "memory"))
	}

	base := []hub.Option{
		hub.WithRepository(deps.Repo),
		hub.WithLogger(logger),
		hub.WithNotes(cat),
	}
	deps.Hub = hub.NewManager(hub.Config{
		CPUColor:    cpuColor,
		CPUDelay:    cfg.CPUDelay(),
		Seed:        cfg.CPUSeed,
		RecentLimit: cfg.RecentLimit,
	}, append(base, opts...)...)
	return deps, nil
}

// Close releases the Redis connection if one was opened.
func (d *Deps) Close() error {
	if d == nil || d.Redis == nil {
		return nil
	}
	return d.Redis.Close()
}
