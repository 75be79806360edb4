package middleware

import (
	"errors"
	"log/slog"

	"hubspot-webhook-relay/internal/delivery/http/response"
	"hubspot-webhook-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients
		internal := apperror.Internal(err)
		log.ErrorContext(c.Request.Context(), "Unexpected error",
			"error", internal.Err.Error(),
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
		)
		response.Error(c, internal.Code, internal.Message)
	}
}
