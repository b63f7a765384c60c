package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeader     = "X-Request-ID"
	maxRequestIDLength  = 64
)

// RequestID tags every request with an ID (the client's, when it sends a
// sane one) and writes one access-log line per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(requestIDContextKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		log.Printf("request_id=%s method=%s path=%s status=%d duration=%s",
			requestID, c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(startedAt).Round(time.Microsecond))
	}
}

// RequestIDFromContext returns the request's ID, or "" outside RequestID.
func RequestIDFromContext(c *gin.Context) string {
	if value, ok := c.Get(requestIDContextKey); ok {
		if requestID, ok := value.(string); ok {
			return requestID
		}
	}
	return ""
}
