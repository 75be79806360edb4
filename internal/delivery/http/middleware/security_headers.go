package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds baseline security headers for a JSON API
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		// Webhook responses echo CRM data; never cache them
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
