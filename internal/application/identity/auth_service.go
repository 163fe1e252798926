package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/session"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned when the backend refuses the login
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Usuario o contraseña incorrectos")

// AuthService handles login, logout and the session's user snapshot
type AuthService struct {
	gateway  identity.AuthGateway
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(gateway identity.AuthGateway, sessions *session.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates against the backend and starts a session holding its token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*session.Session, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Ingresa usuario y contraseña")
	}

	s.logger.Info("Login attempt", zap.String("username", username), zap.String("ip", input.IP))

	res, err := s.gateway.Login(ctx, identity.Credentials{
		Username:   username,
		Password:   input.Password,
		RememberMe: input.RememberMe,
	})
	if err != nil {
		if apiclient.IsUnauthorized(err) || apiclient.StatusOf(err) == 400 {
			s.logger.Warn("Login rejected by backend", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login request failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	// Some deployments omit the user from the login answer
	if res.User == nil {
		user, err := s.gateway.Me(apiclient.WithToken(ctx, res.Token))
		if err != nil {
			s.logger.Error("Failed to load user after login", zap.Error(err))
			return nil, err
		}
		res.User = user
	}

	sess, err := s.sessions.Start(ctx, res, input.RememberMe)
	if err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			s.logger.Warn("Backend issued an expired token", zap.String("username", username))
		}
		return nil, err
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", username),
		zap.String("user_id", res.User.ID),
		zap.Bool("remember", input.RememberMe))
	return sess, nil
}

// Logout tells the backend and drops the session. A backend failure is logged
// and does not keep the local session alive.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.gateway.Logout(apiclient.WithToken(ctx, sess.Token)); err != nil {
		s.logger.Warn("Backend logout failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
	return s.sessions.Destroy(ctx, sess.ID)
}

// Refresh reloads the user from GET /auth/me into the session
func (s *AuthService) Refresh(ctx context.Context, sess *session.Session) (*identity.User, error) {
	user, err := s.gateway.Me(apiclient.WithToken(ctx, sess.Token))
	if err != nil {
		return nil, err
	}
	sess.User = user
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return user, nil
}
