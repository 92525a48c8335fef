package middleware

import (
	"math/rand/v2"
	"strconv"
	"time"

	"busreservation/internal/utils"

	"github.com/gin-gonic/gin"
)

const requestIDKey = "request_id"

// RequestID ensures every request has an ID for tracing and logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.Itoa(rand.IntN(1000000))
		}
		c.Set(requestIDKey, rid)
		c.Request = c.Request.WithContext(utils.WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// GetRequestID extracts request_id from gin context when available.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
