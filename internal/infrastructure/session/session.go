// Package session keeps the backend bearer token on the server side.
// The browser only holds an opaque session id cookie.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/google/uuid"
)

// KeyPrefix namespaces session records in shared stores
const KeyPrefix = "onlytop:session:"

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Session is one logged-in browser
type Session struct {
	ID        string         `json:"id"`
	Token     string         `json:"token"`
	User      *identity.User `json:"user,omitempty"`
	Theme     string         `json:"theme,omitempty"`
	Remember  bool           `json:"remember"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Expired reports whether the session outlived its TTL at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TTL returns the time left at now
func (s *Session) TTL(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Store persists sessions by id
type Store interface {
	// Get returns ErrNotFound for unknown or expired ids
	Get(ctx context.Context, id string) (*Session, error)
	// Save writes the session until its ExpiresAt
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a fresh random session id
func NewID() string {
	return uuid.NewString()
}

func key(id string) string {
	return KeyPrefix + id
}
