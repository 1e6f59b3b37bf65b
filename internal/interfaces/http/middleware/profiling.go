package middleware

import (
	"context"

	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling attaches Pyroscope route and method labels to the request so
// CPU profiles can be sliced per endpoint. Health and docs routes are skipped.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	skip := []string{"/health", "/api/v1/health"}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || skipPath(route, skip, []string{"/swagger"}) {
			c.Next()
			return
		}
		labels := telemetry.HTTPRequestLabels(route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
