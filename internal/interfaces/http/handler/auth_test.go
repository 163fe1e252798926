package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	appidentity "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/dto"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupAuth(t *testing.T) (*testEnv, *MockAuthGateway) {
	env := newTestEnv(t)
	gw := new(MockAuthGateway)
	h := NewAuthHandler(env.base, appidentity.NewAuthService(gw, env.sessions, zaptest.NewLogger(t)))
	env.mountPublic(h.PublicRoutes(func(c *gin.Context) { c.Next() }))
	env.mount(h.Routes())
	return env, gw
}

func TestAuthHandler_LoginPage(t *testing.T) {
	env, _ := setupAuth(t)

	w := env.get("/login?next=%2Fcontratos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="next" value="/contratos"`)

	_, cookie := env.login()
	w = env.get("/login?next=%2Fcontratos", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contratos", w.Header().Get("Location"))
}

func TestAuthHandler_Login(t *testing.T) {
	env, gw := setupAuth(t)
	user := &identity.User{ID: "u-7", Username: "ana", DisplayName: "Ana Gómez"}
	gw.On("Login", mock.Anything, identity.Credentials{Username: "ana", Password: "secret", RememberMe: true}).
		Return(&identity.LoginResult{Token: "opaque-token", User: user}, nil)

	w := env.post("/login", url.Values{
		"username": {"ana"},
		"password": {"secret"},
		"remember": {"true"},
		"next":     {"/ventas/metas"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ventas/metas", w.Header().Get("Location"))
	assert.Equal(t, "Bienvenido, Ana Gómez", flashOf(t, w).Message)

	cookie := cookieOf(w, testCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)

	// the cookie opens protected pages
	gw.On("Me", mock.Anything).Return(user, nil)
	w = env.get("/me", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	gw.AssertExpectations(t)
}

func TestAuthHandler_Login_OffsiteNextIgnored(t *testing.T) {
	env, gw := setupAuth(t)
	gw.On("Login", mock.Anything, mock.Anything).
		Return(&identity.LoginResult{Token: "opaque-token", User: &identity.User{ID: "u-7", Username: "ana"}}, nil)

	w := env.post("/login", url.Values{"username": {"ana"}, "password": {"secret"}, "next": {"//evil.example"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env, gw := setupAuth(t)
	gw.On("Login", mock.Anything, mock.Anything).
		Return(nil, &apiclient.APIError{Method: http.MethodPost, Path: "/auth/login", StatusCode: http.StatusUnauthorized, Message: "Unauthorized"})

	w := env.post("/login", url.Values{"username": {"ana"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Usuario o contraseña incorrectos")
	assert.Contains(t, body, `value="ana"`)
	assert.NotContains(t, body, "wrong")
	assert.Nil(t, cookieOf(w, testCookie))
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	env, gw := setupAuth(t)

	w := env.post("/login", url.Values{"username": {"ana"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Este campo es obligatorio")
	gw.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_Logout(t *testing.T) {
	env, gw := setupAuth(t)
	gw.On("Logout", mock.Anything).Return(nil)
	_, cookie := env.login()

	w := env.post("/logout", url.Values{}, cookie)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	assert.Equal(t, "Sesión cerrada", flashOf(t, w).Message)
	cleared := cookieOf(w, testCookie)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	// the old cookie no longer opens anything
	w = env.get("/me", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAuthHandler_Me_BackendRejectsToken(t *testing.T) {
	env, gw := setupAuth(t)
	gw.On("Me", mock.Anything).Return(nil, &apiclient.APIError{StatusCode: http.StatusUnauthorized})
	_, cookie := env.login()

	w := env.get("/me", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeSessionExpired, resp.Error.Code)

	cleared := cookieOf(w, testCookie)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	// the session is gone server side too
	w = env.get("/me", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAuthHandler_LoginRateLimited(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.base, appidentity.NewAuthService(new(MockAuthGateway), env.sessions, zaptest.NewLogger(t)))
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Close)
	env.mountPublic(h.PublicRoutes(middleware.RateLimitByKey(limiter, middleware.ClientIPKey, h.LoginRateLimited)))

	form := url.Values{"username": {"ana"}}
	first := env.post("/login", form)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := env.post("/login", form)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Demasiados intentos")
}
