package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryFormGuard implements FormGuard using an in-memory map.
// This is suitable for single-instance deployments and testing
type InMemoryFormGuard struct {
	mu        sync.Mutex
	entries   map[string]time.Time // key -> expiry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryFormGuard creates a guard and starts its cleanup goroutine
func NewInMemoryFormGuard(ttl time.Duration) *InMemoryFormGuard {
	if ttl <= 0 {
		ttl = defaultFormTTL
	}
	g := &InMemoryFormGuard{
		entries:  make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	g.wg.Add(1)
	go g.cleanupLoop()

	return g
}

func (g *InMemoryFormGuard) Issue(_ context.Context, scope string) (string, error) {
	token := newFormToken()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[formKey(scope, token)] = g.now().Add(g.ttl)
	return token, nil
}

func (g *InMemoryFormGuard) Consume(_ context.Context, scope, token string) error {
	if token == "" {
		return ErrTokenUsed
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	k := formKey(scope, token)
	expiresAt, ok := g.entries[k]
	if !ok {
		return ErrTokenUsed
	}
	delete(g.entries, k)
	if !g.now().Before(expiresAt) {
		return ErrTokenUsed
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times
func (g *InMemoryFormGuard) Close() error {
	g.closeOnce.Do(func() {
		close(g.stopChan)
		g.wg.Wait()
	})
	return nil
}

func (g *InMemoryFormGuard) cleanupLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.cleanup()
		}
	}
}

func (g *InMemoryFormGuard) cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, expiresAt := range g.entries {
		if !now.Before(expiresAt) {
			delete(g.entries, k)
		}
	}
}

var _ FormGuard = (*InMemoryFormGuard)(nil)
