package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// logs one structured line per request and attaches a request logger to the context
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := defaultLogger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), reqLogger))

		c.Next()

		args := []any{
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if identity := c.GetString("identity"); identity != "" {
			args = append(args, "identity", identity)
		}

		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Error("request completed", args...)
		case status >= 400:
			reqLogger.Warn("request completed", args...)
		default:
			reqLogger.Info("request completed", args...)
		}
	}
}
