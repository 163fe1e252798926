package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingToken = errors.New("missing token")
)

// Claims are the fields read from the backend access token
type Claims struct {
	jwt.RegisteredClaims
	UserID   string   `json:"userId,omitempty"`
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// TokenInfo describes a backend token without trusting it
type TokenInfo struct {
	Subject   string
	Username  string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the token carries no exp
}

// Remaining returns the lifetime left at now, or 0 when unknown or expired.
func (i TokenInfo) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() {
		return 0
	}
	if d := i.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// TokenInspector decodes backend JWTs. The signature is never verified here:
// the backend checks it on every call, and this process does not hold the key.
type TokenInspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenInspector creates a TokenInspector.
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Inspect reads sub and exp from the token. Tokens whose exp is not after now
// are rejected; tokens that are not JWTs at all (opaque backend tokens) yield
// ErrInvalidToken so callers can fall back to a configured TTL.
func (s *TokenInspector) Inspect(tokenString string) (*TokenInfo, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}

	info := &TokenInfo{
		Subject:  claims.Subject,
		Username: claims.Username,
		Roles:    claims.Roles,
	}
	if info.Subject == "" {
		info.Subject = claims.UserID
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		if !s.now().Before(info.ExpiresAt) {
			return nil, ErrExpiredToken
		}
	}
	return info, nil
}

// SessionTTL picks how long a login lives: the configured TTL for the chosen
// mode, never past the token expiry. A token that has run out yields 0.
func SessionTTL(info *TokenInfo, now time.Time, ttl, rememberTTL time.Duration, remember bool) time.Duration {
	d := ttl
	if remember {
		d = rememberTTL
	}
	if info != nil && !info.ExpiresAt.IsZero() {
		d = min(d, info.Remaining(now))
	}
	return d
}
