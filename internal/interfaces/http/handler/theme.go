package handler

import (
	"net/http"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/logger"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Themes the layout understands
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// NormalizeTheme maps anything unknown to ThemeSystem
func NormalizeTheme(theme string) string {
	switch t := strings.ToLower(strings.TrimSpace(theme)); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t
	default:
		return ThemeSystem
	}
}

// NextTheme cycles light, dark, system
func NextTheme(theme string) string {
	switch NormalizeTheme(theme) {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

// theme resolves the theme of the request: the session first, then the
// anonymous cookie.
func (h *BaseHandler) theme(c *gin.Context) string {
	if sess := middleware.CurrentSession(c); sess != nil && sess.Theme != "" {
		return NormalizeTheme(sess.Theme)
	}
	if v, err := c.Cookie(h.sessions.ThemeCookieName()); err == nil {
		return NormalizeTheme(v)
	}
	return ThemeSystem
}

// ThemeHandler switches the color theme
type ThemeHandler struct {
	*BaseHandler
}

// NewThemeHandler creates a new ThemeHandler
func NewThemeHandler(base *BaseHandler) *ThemeHandler {
	return &ThemeHandler{BaseHandler: base}
}

// ThemeRequest is the theme switch body. An empty theme advances the cycle.
type ThemeRequest struct {
	Theme string `form:"theme" json:"theme"`
	Next  string `form:"next" json:"-"`
}

// Routes are mounted below /ui and are reachable without a session
func (h *ThemeHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("theme", "/theme").POST("", h.Switch)
}

// Switch stores the new theme in the session, or in a cookie for anonymous
// visitors, and answers with JSON or a redirect back.
func (h *ThemeHandler) Switch(c *gin.Context) {
	var req ThemeRequest
	_ = c.ShouldBind(&req)

	theme := NormalizeTheme(req.Theme)
	if strings.TrimSpace(req.Theme) == "" {
		theme = NextTheme(h.theme(c))
	}

	if sess := middleware.CurrentSession(c); sess != nil {
		sess.Theme = theme
		if err := h.sessions.Update(c.Request.Context(), sess); err != nil {
			logger.L(c.Request.Context()).Warn("Failed to store theme", zap.Error(err))
			h.sessions.SetThemeCookie(c.Writer, theme)
		}
	} else {
		h.sessions.SetThemeCookie(c.Writer, theme)
	}

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		h.Success(c, gin.H{"theme": theme})
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.SafeNext(req.Next, "/"))
}
