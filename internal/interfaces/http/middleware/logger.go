package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"foody.backend/pkg/logger"
)

// LoggerMiddleware writes one structured access-log line per request.
// It runs after RequestIDMiddleware so the line carries the request ID.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.LogRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
