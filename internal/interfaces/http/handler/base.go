package handler

import (
	"errors"
	"net/http"

	appexport "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/export"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/cache"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/logger"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/session"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/dto"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// LoginPath is where anonymous visitors are sent
	LoginPath = "/login"

	// formTokenField carries the one-shot token of guarded forms
	formTokenField = "_token"

	// pageFormScope scopes the token shared by the forms of one rendered page
	pageFormScope = "page"

	msgSessionExpired = "Tu sesión expiró, inicia sesión de nuevo"
)

var errPageNotFound = shared.NewDomainError("NOT_FOUND", "La página que buscas no existe")

// BaseHandler provides the rendering, flash and error helpers shared by
// every page handler
type BaseHandler struct {
	views    *web.Renderer
	sessions *session.Manager
	forms    cache.FormGuard
	logger   *zap.Logger
}

// NewBaseHandler creates the shared handler helpers
func NewBaseHandler(views *web.Renderer, sessions *session.Manager, forms cache.FormGuard, logger *zap.Logger) *BaseHandler {
	return &BaseHandler{views: views, sessions: sessions, forms: forms, logger: logger}
}

// page builds the layout model for the current request
func (h *BaseHandler) page(c *gin.Context, title, active string) *web.Page {
	p := &web.Page{
		Title:     title,
		Active:    active,
		Theme:     h.theme(c),
		RequestID: middleware.GetRequestID(c),
		Path:      c.Request.URL.RequestURI(),
		Query:     c.Request.URL.Query(),
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		p.User = sess.User
	}
	if f := middleware.GetFlash(c); f != nil {
		p.Flash = &web.Flash{Kind: f.Kind, Message: f.Message}
	}
	return p
}

// formPage builds the layout model of a page that holds mutation forms. Its
// token lets exactly one of those forms be submitted.
func (h *BaseHandler) formPage(c *gin.Context, title, active string) *web.Page {
	p := h.page(c, title, active)
	p.FormToken = h.issueFormToken(c, pageFormScope)
	return p
}

// guard runs ahead of a mutation and consumes the page token. Replays and
// missing tokens go back to the referring page, or fallback.
func (h *BaseHandler) guard(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.consumeFormToken(c, pageFormScope); err != nil {
			h.fail(c, err, backTo(c, middleware.RefererPath(c.Request, fallback)))
			c.Abort()
			return
		}
		c.Next()
	}
}

// render writes the named page with status
func (h *BaseHandler) render(c *gin.Context, status int, name string, p *web.Page) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.views.Render(c.Writer, name, p); err != nil {
		logger.L(c.Request.Context()).Error("Failed to render page", zap.String("page", name), zap.Error(err))
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, dto.MessageInternal)
	}
}

// redirect answers a form post with 303 and an optional flash message
func (h *BaseHandler) redirect(c *gin.Context, location, kind, message string) {
	if message != "" {
		middleware.SetFlash(c, kind, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// fail reports a failed mutation on the page the user came from
func (h *BaseHandler) fail(c *gin.Context, err error, back string) {
	if h.sessionLost(c, err) {
		return
	}
	status, info := dto.ErrorFrom(err)
	h.logFailure(c, status, err)
	h.redirect(c, back, middleware.FlashError, info.Message)
}

// failPage renders the error page for a page that could not be loaded
func (h *BaseHandler) failPage(c *gin.Context, err error) {
	if h.sessionLost(c, err) {
		return
	}
	status, info := dto.ErrorFrom(err)
	h.logFailure(c, status, err)

	p := h.page(c, "Error", "")
	p.Data = errorData{Status: status, Code: info.Code, Message: info.Message}
	h.render(c, status, "error", p)
}

// failJSON answers a /ui request with the error envelope
func (h *BaseHandler) failJSON(c *gin.Context, err error) {
	if h.sessionLost(c, err) {
		return
	}
	status, info := dto.ErrorFrom(err)
	h.logFailure(c, status, err)
	c.JSON(status, dto.NewErrorResponseWithRequestID(info, middleware.GetRequestID(c)))
}

// NoRoute answers unknown paths: JSON below /ui, the error page elsewhere
func (h *BaseHandler) NoRoute(c *gin.Context) {
	if middleware.IsUIRequest(c) {
		h.failJSON(c, errPageNotFound)
		return
	}
	h.failPage(c, errPageNotFound)
}

// sessionLost drops the session when the backend no longer accepts its
// token and sends the browser to the login page.
func (h *BaseHandler) sessionLost(c *gin.Context, err error) bool {
	if !apiclient.IsUnauthorized(err) && !errors.Is(err, shared.ErrSessionExpired) {
		return false
	}

	h.dropSession(c)
	if middleware.IsUIRequest(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
			dto.ErrorInfo{Code: dto.ErrCodeSessionExpired, Message: msgSessionExpired},
			middleware.GetRequestID(c),
		))
		return true
	}
	h.redirect(c, middleware.LoginRedirect(LoginPath, c.Request), middleware.FlashInfo, msgSessionExpired)
	c.Abort()
	return true
}

// dropSession deletes the current session and its cookie
func (h *BaseHandler) dropSession(c *gin.Context) {
	ctx := c.Request.Context()
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Destroy(ctx, sess.ID); err != nil {
			logger.L(ctx).Warn("Failed to drop session", zap.Error(err))
		}
		logger.L(ctx).Info("Session dropped", zap.String("session_id", sess.ID))
	}
	h.sessions.ClearCookie(c.Writer)
}

// renderForm shows a form again after a failed submit: field errors next
// to their inputs, anything else as an error notice above the form.
func (h *BaseHandler) renderForm(c *gin.Context, err error, name string, p *web.Page) {
	if h.sessionLost(c, err) {
		return
	}
	if fields, ok := validationFailed(err); ok {
		p.Errors = fields
		h.render(c, http.StatusBadRequest, name, p)
		return
	}
	status, info := dto.ErrorFrom(err)
	h.logFailure(c, status, err)
	p.Flash = &web.Flash{Kind: middleware.FlashError, Message: info.Message}
	h.render(c, status, name, p)
}

func (h *BaseHandler) logFailure(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	log := logger.L(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Int("status", status), zap.Error(err))
		return
	}
	log.Warn("Request rejected", zap.Int("status", status), zap.Error(err))
}

// formScope binds a form token to the session and the form
func formScope(c *gin.Context, form string) string {
	if sess := middleware.CurrentSession(c); sess != nil {
		return sess.ID + ":" + form
	}
	return "anon:" + form
}

// issueFormToken returns a fresh one-shot token for form. A store failure
// yields an empty token, which the submit will then reject.
func (h *BaseHandler) issueFormToken(c *gin.Context, form string) string {
	ctx := c.Request.Context()
	token, err := h.forms.Issue(ctx, formScope(c, form))
	if err != nil {
		logger.L(ctx).Warn("Failed to issue form token", zap.String("form", form), zap.Error(err))
		return ""
	}
	return token
}

// consumeFormToken accepts the posted token once. Replays are reported as
// shared.ErrAlreadySubmitted.
func (h *BaseHandler) consumeFormToken(c *gin.Context, form string) error {
	err := h.forms.Consume(c.Request.Context(), formScope(c, form), c.PostForm(formTokenField))
	if errors.Is(err, cache.ErrTokenUsed) {
		return shared.ErrAlreadySubmitted
	}
	return err
}

type errorData struct {
	Status  int
	Code    string
	Message string
}

// sendExport redirects to the stored file or streams it
func (h *BaseHandler) sendExport(c *gin.Context, res *appexport.Result) {
	if res.Stored() {
		c.Redirect(http.StatusSeeOther, res.URL)
		return
	}
	attachment(c, res.Filename, false)
	c.Data(http.StatusOK, res.ContentType, res.Data)
}
