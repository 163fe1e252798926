package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/auth"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/config"
)

// Manager creates, loads and destroys sessions and their cookies
type Manager struct {
	store     Store
	inspector *auth.TokenInspector
	cfg       config.SessionConfig
	now       func() time.Time
}

// NewManager creates a Manager
func NewManager(store Store, inspector *auth.TokenInspector, cfg config.SessionConfig) *Manager {
	return &Manager{
		store:     store,
		inspector: inspector,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Start stores a new session for a successful login. An already expired
// backend token is rejected; an opaque token gets the configured TTL.
func (m *Manager) Start(ctx context.Context, res *identity.LoginResult, remember bool) (*Session, error) {
	if res == nil || res.Token == "" {
		return nil, auth.ErrMissingToken
	}

	info, err := m.inspector.Inspect(res.Token)
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return nil, shared.ErrSessionExpired
	case errors.Is(err, auth.ErrInvalidToken):
		info = nil
	case err != nil:
		return nil, err
	}

	now := m.now()
	ttl := auth.SessionTTL(info, now, m.cfg.TTL, m.cfg.RememberTTL, remember)
	if ttl <= 0 {
		return nil, shared.ErrSessionExpired
	}
	sess := &Session{
		ID:        NewID(),
		Token:     res.Token,
		User:      res.User,
		Remember:  remember,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return sess, nil
}

// Load returns the session for id
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

// Update rewrites a session keeping its expiry (user refresh, theme change)
func (m *Manager) Update(ctx context.Context, sess *Session) error {
	if sess.Expired(m.now()) {
		return ErrExpired
	}
	return m.store.Save(ctx, sess)
}

// Destroy deletes the session
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// CookieName is the name of the session id cookie
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

// SetCookie writes the session id cookie. Remembered sessions get a
// persistent cookie, others a browser-session cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, sess *Session) {
	c := m.cookie(m.cfg.CookieName, sess.ID)
	if sess.Remember {
		c.MaxAge = int(sess.TTL(m.now()).Seconds())
		c.Expires = sess.ExpiresAt
	}
	http.SetCookie(w, c)
}

// ClearCookie expires the session id cookie
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	c := m.cookie(m.cfg.CookieName, "")
	c.MaxAge = -1
	http.SetCookie(w, c)
}

// SetThemeCookie stores the theme for visitors without a session
func (m *Manager) SetThemeCookie(w http.ResponseWriter, theme string) {
	c := m.cookie(m.cfg.ThemeCookieName, theme)
	c.HttpOnly = false
	c.MaxAge = int((365 * 24 * time.Hour).Seconds())
	http.SetCookie(w, c)
}

// ThemeCookieName is the name of the theme cookie
func (m *Manager) ThemeCookieName() string {
	return m.cfg.ThemeCookieName
}

func (m *Manager) cookie(name, value string) *http.Cookie {
	path := m.cfg.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   m.cfg.Domain,
		Secure:   m.cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(m.cfg.SameSite),
	}
}

func sameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
