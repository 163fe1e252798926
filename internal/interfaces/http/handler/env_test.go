package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/auth"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/cache"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/config"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/session"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testCookie = "onlytop_session"

var testFlashKey = bytes.Repeat([]byte{0x5a}, 32)

// testEnv wires the real renderer, session manager and form guard around
// a bare gin engine
type testEnv struct {
	t        *testing.T
	engine   *gin.Engine
	base     *BaseHandler
	sessions *session.Manager
	forms    *cache.InMemoryFormGuard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	views, err := web.NewRenderer(time.UTC)
	require.NoError(t, err)

	store := session.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	sessions := session.NewManager(store, auth.NewTokenInspector(), config.SessionConfig{
		CookieName:      testCookie,
		ThemeCookieName: "onlytop_theme",
		Path:            "/",
		SameSite:        "lax",
		TTL:             time.Hour,
		RememberTTL:     24 * time.Hour,
	})

	forms := cache.NewInMemoryFormGuard(time.Minute)
	t.Cleanup(func() { _ = forms.Close() })

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Flash(false, testFlashKey), middleware.Session(sessions))

	return &testEnv{
		t:        t,
		engine:   engine,
		base:     NewBaseHandler(views, sessions, forms, zaptest.NewLogger(t)),
		sessions: sessions,
		forms:    forms,
	}
}

// mount registers groups behind RequireSession, like the page routes
func (e *testEnv) mount(groups ...*router.DomainGroup) {
	r := router.NewRouter(e.engine, router.WithMiddleware(middleware.RequireSession(LoginPath)))
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()
}

// mountUI registers groups below /ui
func (e *testEnv) mountUI(groups ...*router.DomainGroup) {
	r := router.NewRouter(e.engine, router.WithPrefix("/ui"))
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()
}

// mountPublic registers groups without the session requirement
func (e *testEnv) mountPublic(groups ...*router.DomainGroup) {
	r := router.NewRouter(e.engine)
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()
}

// login starts a session the way a successful sign-in does
func (e *testEnv) login() (*session.Session, *http.Cookie) {
	e.t.Helper()
	sess, err := e.sessions.Start(context.Background(), &identity.LoginResult{
		Token: "opaque-token",
		User:  &identity.User{ID: "u-1", Username: "ana", DisplayName: "Ana Gómez"},
	}, false)
	require.NoError(e.t, err)
	return sess, &http.Cookie{Name: testCookie, Value: sess.ID}
}

// formToken issues a one-shot token the way the page render does
func (e *testEnv) formToken(sess *session.Session, form string) string {
	e.t.Helper()
	token, err := e.forms.Issue(context.Background(), sess.ID+":"+form)
	require.NoError(e.t, err)
	return token
}

func (e *testEnv) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, target, nil, cookies...)
}

// post submits form the way a rendered page does: a signed-in post without
// an explicit _token carries a fresh page token. The caller's form is not
// modified.
func (e *testEnv) post(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	if form.Has(formTokenField) {
		return e.do(http.MethodPost, target, form, cookies...)
	}
	for _, c := range cookies {
		if c.Name != testCookie {
			continue
		}
		token, err := e.forms.Issue(context.Background(), c.Value+":"+pageFormScope)
		require.NoError(e.t, err)
		signed := url.Values{formTokenField: {token}}
		for k, v := range form {
			signed[k] = v
		}
		return e.do(http.MethodPost, target, signed, cookies...)
	}
	return e.do(http.MethodPost, target, form, cookies...)
}

// postRaw submits form exactly as given
func (e *testEnv) postRaw(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, target, form, cookies...)
}

func (e *testEnv) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// flashOf replays the flash cookie set by a redirect through the Flash
// middleware and returns the message the next page would show
func flashOf(t *testing.T, w *httptest.ResponseRecorder) middleware.FlashMessage {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name != middleware.FlashCookieName || c.Value == "" {
			continue
		}
		echo := gin.New()
		echo.Use(middleware.Flash(false, testFlashKey))
		echo.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, middleware.GetFlash(c)) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(c)
		rec := httptest.NewRecorder()
		echo.ServeHTTP(rec, req)

		var msg *middleware.FlashMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		require.NotNil(t, msg, "flash cookie did not open")
		return *msg
	}
	t.Fatalf("no flash cookie in response")
	return middleware.FlashMessage{}
}

var formTokenPattern = regexp.MustCompile(`name="_token" value="([^"]+)"`)

// formTokenOf returns the page token rendered into a form
func formTokenOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	m := formTokenPattern.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2, "no form token in page")
	return m[1]
}

func cookieOf(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
