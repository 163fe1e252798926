package handler

import (
	"errors"
	"net/http"

	appidentity "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/logger"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/dto"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves login, logout and the current user
type AuthHandler struct {
	*BaseHandler
	auth *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(base *BaseHandler, auth *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth}
}

// LoginForm is the login form as submitted
type LoginForm struct {
	Username string `form:"username" binding:"required,max=120"`
	Password string `form:"password" binding:"required,max=256"`
	Remember bool   `form:"remember"`
	Next     string `form:"next"`
}

// PublicRoutes are reachable without a session. limit guards the login post.
func (h *AuthHandler) PublicRoutes(limit gin.HandlerFunc) *router.DomainGroup {
	g := router.NewDomainGroup("auth", "/")
	g.Form("login", h.LoginPage, limit, h.Login)
	return g
}

// Routes need a session
func (h *AuthHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("account", "/")
	g.POST("logout", h.Logout)
	g.GET("me", h.Me)
	return g
}

// LoginPage renders the sign-in form; signed-in users go straight on
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentSession(c) != nil {
		c.Redirect(http.StatusSeeOther, middleware.SafeNext(c.Query("next"), "/"))
		return
	}
	h.renderLogin(c, http.StatusOK, LoginForm{Next: c.Query("next")}, nil)
}

// Login authenticates against the backend and starts the session
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		h.renderLogin(c, http.StatusBadRequest, form, err)
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), appidentity.LoginInput{
		Username:   form.Username,
		Password:   form.Password,
		RememberMe: form.Remember,
		IP:         c.ClientIP(),
	})
	form.Password = ""
	if err != nil {
		status, _ := dto.ErrorFrom(err)
		if errors.Is(err, appidentity.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		h.renderLogin(c, status, form, err)
		return
	}

	h.sessions.SetCookie(c.Writer, sess)
	h.redirect(c, middleware.SafeNext(form.Next, "/"), middleware.FlashSuccess, "Bienvenido, "+sess.User.Name())
}

// LoginRateLimited answers a throttled login attempt
func (h *AuthHandler) LoginRateLimited(c *gin.Context) {
	form := LoginForm{Username: c.PostForm("username"), Next: c.PostForm("next")}
	p := h.page(c, "Iniciar sesión", "")
	p.Form = form
	p.Flash = &web.Flash{Kind: middleware.FlashError, Message: "Demasiados intentos, espera un momento antes de volver a intentar"}
	h.render(c, http.StatusTooManyRequests, "login", p)
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, form LoginForm, err error) {
	p := h.page(c, "Iniciar sesión", "")
	p.Form = form
	if err != nil {
		if fields, ok := validationFailed(err); ok {
			p.Errors = fields
		} else {
			_, info := dto.ErrorFrom(err)
			p.Flash = &web.Flash{Kind: middleware.FlashError, Message: info.Message}
			h.logFailure(c, status, err)
		}
	}
	h.render(c, status, "login", p)
}

// Logout ends the session here and on the backend
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.auth.Logout(ctx, middleware.CurrentSession(c)); err != nil {
		logger.L(ctx).Warn("Failed to delete session on logout", zap.Error(err))
	}
	h.sessions.ClearCookie(c.Writer)
	h.redirect(c, LoginPath, middleware.FlashInfo, "Sesión cerrada")
}

// Me reloads the user from the backend and returns it as JSON
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Refresh(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			h.dropSession(c)
			h.Error(c, dto.ErrCodeSessionExpired, msgSessionExpired)
			return
		}
		h.failJSON(c, err)
		return
	}
	h.Success(c, user)
}
