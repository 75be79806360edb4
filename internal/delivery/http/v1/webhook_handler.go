package v1

import (
	"errors"
	"io"
	"net/http"

	"hubspot-webhook-relay/internal/delivery/http/response"
	"hubspot-webhook-relay/internal/domain"
	"hubspot-webhook-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhookUC domain.WebhookUsecase
}

// NewWebhookHandler registers the form webhook route (public, no auth required)
func NewWebhookHandler(public gin.IRoutes, webhookUC domain.WebhookUsecase) {
	handler := &WebhookHandler{
		webhookUC: webhookUC,
	}

	public.POST("/webhook", handler.ReceiveSubmission)
}

// ReceiveSubmission godoc
// @Summary      Relay a form submission to HubSpot
// @Description  Validates a form submission, normalizes metadata.submittedAt to ISO-8601 and creates a HubSpot contact.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        submission  body      domain.Submission  true  "Form submission"
// @Success      200         {object}  domain.RelayResult
// @Failure      400         {object}  response.ErrorResponse
// @Failure      413         {object}  response.ErrorResponse
// @Failure      500         {object}  response.ErrorResponse
// @Router       /webhook [post]
func (h *WebhookHandler) ReceiveSubmission(c *gin.Context) {
	var sub domain.Submission
	if err := c.ShouldBindJSON(&sub); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Error(apperror.PayloadTooLarge(domain.MsgPayloadTooLarge))
			return
		}
		c.Error(apperror.BadRequest(domain.MsgInvalidPayload))
		return
	}

	result, err := h.webhookUC.Relay(c.Request.Context(), &sub)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
