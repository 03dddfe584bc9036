package gin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// requestID reuses the inbound X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func(begin time.Time) {
			logger.Info("request",
				"request_id", c.GetString(requestIDKey),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		c.Next()
	}
}

func recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		logger.Error("panic",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"panic", rec,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal error."})
	})
}
