package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Flash(false, nil), BodyLimit(limit))
	r.POST("/modelos", func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.String(http.StatusBadRequest, "truncated")
			return
		}
		c.String(http.StatusOK, c.PostForm("nombre"))
	})
	r.POST("/ui/theme", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/modelos", func(c *gin.Context) {
		c.String(http.StatusOK, "list")
	})
	return r
}

func formRequest(target string, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestBodyLimit(t *testing.T) {
	t.Run("form within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		bodyLimitRouter(64).ServeHTTP(w, formRequest("/modelos", url.Values{"nombre": {"Luna"}}.Encode()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Luna", w.Body.String())
	})

	t.Run("oversize page post goes back with a flash", func(t *testing.T) {
		req := formRequest("/modelos", "nombre="+strings.Repeat("x", 200))
		req.Header.Set("Referer", "http://example.com/modelos/nueva?tab=datos")
		w := httptest.NewRecorder()
		bodyLimitRouter(64).ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/modelos/nueva?tab=datos", w.Header().Get("Location"))
		assert.Contains(t, w.Header().Get("Set-Cookie"), FlashCookieName+"=")
	})

	t.Run("offsite referer falls back to root", func(t *testing.T) {
		req := formRequest("/modelos", strings.Repeat("x", 200))
		req.Header.Set("Referer", "https://evil.test/phish")
		w := httptest.NewRecorder()
		bodyLimitRouter(64).ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("oversize ui call gets JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		bodyLimitRouter(8).ServeHTTP(w, formRequest("/ui/theme", strings.Repeat("x", 20)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
	})

	t.Run("GET is not limited", func(t *testing.T) {
		w := httptest.NewRecorder()
		bodyLimitRouter(1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/modelos", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown length is cut while reading", func(t *testing.T) {
		req := formRequest("/modelos", "nombre="+strings.Repeat("x", 200))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		bodyLimitRouter(64).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "truncated", w.Body.String())
	})
}
