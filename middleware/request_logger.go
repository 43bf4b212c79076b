package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vnkhanh/wild-series-backend/logger"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
	ContextLogger    = "logger"
)

// RequestLogger assigns a request id, stores a request-scoped logger in the
// context and logs one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Set(ContextLogger, logger.WithRequest(log, requestID, 0))

		c.Next()

		var userID uint
		if user, ok := CurrentUser(c); ok {
			userID = user.ID
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		reqLog := logger.WithRequest(log, requestID, userID)
		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLog.Error("request", fields...)
		case status >= 400:
			reqLog.Warn("request", fields...)
		default:
			reqLog.Info("request", fields...)
		}
	}
}

// Logger returns the request-scoped logger, or fallback outside a request.
func Logger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if l, ok := v.(*zap.Logger); ok {
			if user, ok := CurrentUser(c); ok {
				return l.With(zap.Uint("user_id", user.ID))
			}
			return l
		}
	}
	return fallback
}
