package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs every request except health checks and scrapes.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request.method", c.Request.Method),
			zap.String("request.path", path),
			zap.String("request.route", c.FullPath()),
			zap.String("request.remote_ip", c.ClientIP()),
			zap.String("request.user_agent", c.Request.UserAgent()),
			zap.Int("response.status", status),
			zap.Int("response.size", c.Writer.Size()),
			zap.Duration("response.latency", latency),
		}
		if userID, ok := UserID(c); ok {
			fields = append(fields, zap.Int64("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("Server error", fields...)
		case status >= 400:
			logger.Warn("Client error", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
	}
}
