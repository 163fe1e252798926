// Package cache holds short-lived shared state: one-shot form tokens and the
// store wiring for sessions.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTokenUsed means the form token was already consumed, expired or never issued
var ErrTokenUsed = errors.New("form token already used or expired")

// FormGuard issues one-shot tokens for mutation forms. Each token is bound
// to a scope (usually session id + form name) and can be consumed once.
type FormGuard interface {
	// Issue creates a token valid for ttl
	Issue(ctx context.Context, scope string) (string, error)
	// Consume removes the token atomically; a second call returns ErrTokenUsed
	Consume(ctx context.Context, scope, token string) error
	Close() error
}

const formTokenPrefix = "onlytop:form:"

func formKey(scope, token string) string {
	return formTokenPrefix + scope + ":" + token
}

func newFormToken() string {
	return uuid.NewString()
}

// defaultFormTTL applies when a guard is created without a TTL
const defaultFormTTL = 2 * time.Hour
