package middleware

import (
	"context"

	"hubspot-webhook-relay/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = string(domain.KeyRequestID)

// RequestID preserves an inbound X-Request-ID or generates one, and exposes it
// on the gin context, the request context and the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(domain.RequestIDHeader)
		if rid == "" || len(rid) > 128 {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Header(domain.RequestIDHeader, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyRequestID, rid))

		c.Next()
	}
}
