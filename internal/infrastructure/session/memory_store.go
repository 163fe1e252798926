package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory.
// Suitable for development and tests; sessions are lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]Session
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryStore creates a memory store with a background sweeper
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries:  make(map[string]Session),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.cleanupLoop()
	return s
}

// Get returns a copy of the stored session
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key(id)]
	if !ok || entry.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return &entry, nil
}

// Save stores a copy of the session
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(sess.ID)] = *sess
	return nil
}

// Delete removes the session; unknown ids are ignored
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(id))
	return nil
}

// Len returns the number of stored sessions, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the sweeper. Safe to call multiple times.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if e.Expired(now) {
			delete(s.entries, k)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
