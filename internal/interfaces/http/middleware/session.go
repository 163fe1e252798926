package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/logger"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/session"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionKey is the gin context key holding the *session.Session
const SessionKey = "session"

// UIPrefix is the path prefix of the JSON endpoints used by page scripts
const UIPrefix = "/ui/"

// Session loads the session named by the session cookie, if any. A valid
// session puts the backend token into the request context so every gateway
// call made while serving the request is authenticated.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(manager.CookieName())
		if err != nil || id == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		sess, err := manager.Load(ctx, id)
		switch {
		case err == nil:
			AttachSession(c, sess)
		case errors.Is(err, session.ErrNotFound):
			manager.ClearCookie(c.Writer)
		default:
			logger.L(ctx).Warn("Failed to load session", zap.Error(err))
		}
		c.Next()
	}
}

// AttachSession makes sess the current session of the request
func AttachSession(c *gin.Context, sess *session.Session) {
	c.Set(SessionKey, sess)
	ctx := apiclient.WithToken(c.Request.Context(), sess.Token)
	if sess.User != nil {
		c.Set(UserIDKey, sess.User.ID)
		ctx = logger.WithUserID(ctx, sess.User.ID)
	}
	c.Request = c.Request.WithContext(ctx)
}

// CurrentSession returns the session of the request or nil
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// RequireSession rejects anonymous requests. Pages are redirected to the
// login page with a next parameter; UI endpoints get a 401 JSON error.
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) != nil {
			c.Next()
			return
		}
		if IsUIRequest(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrorInfo{Code: dto.ErrCodeSessionExpired, Message: "La sesión ha expirado"},
				GetRequestID(c),
			))
			return
		}
		c.Redirect(http.StatusSeeOther, LoginRedirect(loginPath, c.Request))
		c.Abort()
	}
}

// LoginRedirect builds the login URL that sends the user back to r after
// signing in. Only GET requests are worth returning to.
func LoginRedirect(loginPath string, r *http.Request) string {
	if r.Method != http.MethodGet || r.URL.Path == loginPath {
		return loginPath
	}
	return loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
}

// SafeNext returns next when it is a local absolute path, otherwise fallback
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return next
}

// IsUIRequest reports whether the request targets a JSON UI endpoint
func IsUIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, UIPrefix) ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
