package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) *RateLimiter {
	t.Helper()
	limiter := NewRateLimiter(limit, window)
	t.Cleanup(limiter.Close)
	return limiter
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := newTestLimiter(t, 5, time.Minute)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("client1"), "request %d should be allowed", i+1)
		}
	})

	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		limiter := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("client2"))
		}

		ok, wait := limiter.Reserve("client2")
		assert.False(t, ok)
		assert.Greater(t, wait, time.Duration(0))
		assert.LessOrEqual(t, wait, 20*time.Second)
	})

	t.Run("separate limits per client", func(t *testing.T) {
		limiter := newTestLimiter(t, 2, time.Minute)

		assert.True(t, limiter.Allow("clientA"))
		assert.True(t, limiter.Allow("clientA"))
		assert.False(t, limiter.Allow("clientA"))

		assert.True(t, limiter.Allow("clientB"))
		assert.True(t, limiter.Allow("clientB"))
	})

	t.Run("refills over the window", func(t *testing.T) {
		limiter := newTestLimiter(t, 2, time.Minute)
		now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.Allow("client3"))
		assert.True(t, limiter.Allow("client3"))
		assert.False(t, limiter.Allow("client3"))

		now = now.Add(30 * time.Second)
		assert.True(t, limiter.Allow("client3"))
		assert.False(t, limiter.Allow("client3"))
	})

	t.Run("remaining returns correct count", func(t *testing.T) {
		limiter := newTestLimiter(t, 5, time.Minute)
		now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		assert.Equal(t, 5, limiter.Remaining("newclient"))

		limiter.Allow("newclient")
		limiter.Allow("newclient")

		assert.Equal(t, 3, limiter.Remaining("newclient"))
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		limiter := newTestLimiter(t, 100, time.Hour)
		var wg sync.WaitGroup
		allowed := 0
		var mu sync.Mutex

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("concurrent-client") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, 100, allowed)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)
		limiter.Close()
		assert.NotPanics(t, limiter.Close)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("returns 429 with retry hint when limit exceeded", func(t *testing.T) {
		limiter := newTestLimiter(t, 2, time.Minute)
		router := gin.New()
		router.Use(RateLimit(limiter))
		router.POST("/login", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
	})

	t.Run("custom rejection renderer", func(t *testing.T) {
		limiter := newTestLimiter(t, 1, time.Minute)
		keyFunc := func(c *gin.Context) string { return c.PostForm("username") }
		onLimited := func(c *gin.Context) {
			c.String(http.StatusTooManyRequests, "espera")
		}

		handlerCalls := 0
		router := gin.New()
		router.POST("/login", RateLimitByKey(limiter, keyFunc, onLimited), func(c *gin.Context) {
			handlerCalls++
			c.String(http.StatusOK, "ok")
		})

		post := func(user string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username="+user))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		assert.Equal(t, http.StatusOK, post("ana").Code)
		w := post("ana")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "espera", w.Body.String())
		assert.Equal(t, http.StatusOK, post("luis").Code)
		assert.Equal(t, 2, handlerCalls)
	})
}
