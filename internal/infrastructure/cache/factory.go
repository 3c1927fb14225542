package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/shelflog/backend/internal/domain/feed"
	"github.com/shelflog/backend/internal/domain/report"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Stores bundles the shared-state stores used by the application
type Stores struct {
	Revisions   feed.RevisionStore
	Trends      report.TrendCache
	Idempotency shared.IdempotencyStore
	// Client is nil when running on in-memory stores
	Client *redis.Client
}

// Close releases the Redis connection, if any
func (s *Stores) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

// Ping checks the backing Redis, if any
func (s *Stores) Ping(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Ping(ctx).Err()
}

// Distributed reports whether state is shared across instances
func (s *Stores) Distributed() bool {
	return s.Client != nil
}

// NewInMemoryStores builds process-local stores
func NewInMemoryStores(cfg config.ReportConfig) *Stores {
	return &Stores{
		Revisions:   NewInMemoryRevisionStore(),
		Trends:      NewInMemoryTrendCache(cfg.CacheTTL),
		Idempotency: NewInMemoryIdempotencyStore(),
	}
}

// NewStores builds Redis-backed stores when Redis is enabled. Outside
// production an unreachable Redis falls back to in-memory stores.
func NewStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, using in-memory revision and trend stores")
		return NewInMemoryStores(cfg.Report), nil
	}

	client, err := NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		if cfg.App.IsProduction() {
			return nil, err
		}
		logger.Warn("Redis unavailable, falling back to in-memory stores", zap.Error(err))
		return NewInMemoryStores(cfg.Report), nil
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	return &Stores{
		Revisions:   NewRedisRevisionStore(client),
		Trends:      NewRedisTrendCache(client, cfg.Report.CacheTTL),
		Idempotency: NewRedisIdempotencyStore(client),
		Client:      client,
	}, nil
}
