package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFormGuard implements FormGuard using Redis
// This is suitable for deployments where several instances serve the same users
type RedisFormGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFormGuard creates a guard on a shared Redis client
func NewRedisFormGuard(client *redis.Client, ttl time.Duration) *RedisFormGuard {
	if ttl <= 0 {
		ttl = defaultFormTTL
	}
	return &RedisFormGuard{client: client, ttl: ttl}
}

// Issue stores the token with SETNX so a collision can never overwrite a live token
func (g *RedisFormGuard) Issue(ctx context.Context, scope string) (string, error) {
	token := newFormToken()
	ok, err := g.client.SetNX(ctx, formKey(scope, token), "1", g.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to issue form token: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("form token collision")
	}
	return token, nil
}

// Consume relies on DEL returning the number of removed keys: only one
// caller can observe 1 for a given token
func (g *RedisFormGuard) Consume(ctx context.Context, scope, token string) error {
	if token == "" {
		return ErrTokenUsed
	}
	n, err := g.client.Del(ctx, formKey(scope, token)).Result()
	if err != nil {
		return fmt.Errorf("failed to consume form token: %w", err)
	}
	if n == 0 {
		return ErrTokenUsed
	}
	return nil
}

// Close is a no-op; the client is owned by the caller
func (g *RedisFormGuard) Close() error {
	return nil
}

var _ FormGuard = (*RedisFormGuard)(nil)
