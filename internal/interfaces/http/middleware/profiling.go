package middleware

import (
	"context"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

var profilingSkipPrefixes = []string{"/static/", "/health", "/favicon.ico"}

// Profiling labels the CPU samples taken while a request runs with its route
// pattern and method, so Pyroscope can split the flame graph per page.
// Unmatched routes carry no route label.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range profilingSkipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		telemetry.WithProfileLabels(c.Request.Context(), c.FullPath(), c.Request.Method, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
