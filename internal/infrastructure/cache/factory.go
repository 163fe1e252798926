package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/config"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores bundles the session store and form guard built from configuration
type Stores struct {
	Sessions session.Store
	Forms    FormGuard
	redis    *redis.Client
}

// Close releases the stores and the shared Redis client
func (s *Stores) Close() error {
	var errs []error
	if s.Sessions != nil {
		errs = append(errs, s.Sessions.Close())
	}
	if s.Forms != nil {
		errs = append(errs, s.Forms.Close())
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	return errors.Join(errs...)
}

// StoreFactory creates stores based on configuration
type StoreFactory struct {
	cfg                   *config.Config
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis is unavailable
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory. Fallback defaults to on outside production.
func NewStoreFactory(cfg *config.Config, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		cfg:                   cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: !cfg.App.IsProduction(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemoryStores creates process-local stores
// WARNING: sessions and form tokens are not shared across instances
func (f *StoreFactory) CreateInMemoryStores() *Stores {
	return &Stores{
		Sessions: session.NewMemoryStore(),
		Forms:    NewInMemoryFormGuard(f.cfg.Session.FormTokenTTL),
	}
}

// CreateRedisStores creates Redis-backed stores sharing one client
func (f *StoreFactory) CreateRedisStores(ctx context.Context) (*Stores, error) {
	client, err := session.NewRedisClient(ctx, f.cfg.Redis)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Sessions: session.NewRedisStore(client),
		Forms:    NewRedisFormGuard(client, f.cfg.Session.FormTokenTTL),
		redis:    client,
	}, nil
}

// CreateStores honours session.store; with "redis" it falls back to memory
// when Redis is down and fallback is allowed
func (f *StoreFactory) CreateStores(ctx context.Context) (*Stores, error) {
	if f.cfg.Session.Store != "redis" {
		f.logger.Info("using in-memory session store")
		return f.CreateInMemoryStores(), nil
	}

	stores, err := f.CreateRedisStores(ctx)
	if err == nil {
		f.logger.Info("using Redis session store", zap.String("addr", f.cfg.Redis.Addr()))
		return stores, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for sessions but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory session store. "+
		"Sessions will not survive restarts or be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStores(), nil
}

// Ping checks the shared Redis client; in-memory stores are always healthy
func (s *Stores) Ping(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Ping(ctx).Err()
}
