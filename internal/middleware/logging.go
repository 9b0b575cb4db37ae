package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/logger"
)

// RequestLogger logs HTTP requests with structured fields, replacing
// gin.Logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		clientIP := c.ClientIP()

		c.Next()

		statusCode := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("client_ip", clientIP),
			zap.Int("status", statusCode),
			zap.Int("response_size", c.Writer.Size()),
			zap.Duration("latency", time.Since(startTime)),
		}
		if requestID, ok := c.Get("request_id"); ok {
			if id, ok := requestID.(string); ok {
				fields = append(fields, zap.String("request_id", id))
			}
		}

		switch {
		case statusCode >= 500:
			logger.Log.Error("HTTP request", fields...)
		case statusCode >= 400:
			logger.Log.Warn("HTTP request", fields...)
		default:
			logger.Log.Info("HTTP request", fields...)
		}
	}
}
