package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planforge/homeplan/core"
)

const (
	// RequestIDHeader carries the request correlation ID
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID injects a correlation ID, honoring one supplied by the caller
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// RequestLogger logs one line per request after it completes
func RequestLogger(logger core.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled", map[string]interface{}{
			"operation":   "http_request",
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.GetString(requestIDKey),
		})
	}
}

// Recovery converts panics into 500 responses instead of dropped connections
func Recovery(logger core.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered in handler", map[string]interface{}{
					"operation":  "http_panic",
					"error":      fmt.Sprintf("%v", r),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"request_id": c.GetString(requestIDKey),
					"stack":      string(debug.Stack()),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()

		c.Next()
	}
}
