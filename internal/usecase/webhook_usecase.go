package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"hubspot-webhook-relay/internal/domain"
	"hubspot-webhook-relay/pkg/apperror"
	"hubspot-webhook-relay/pkg/hubspot"
	"hubspot-webhook-relay/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type webhookUsecase struct {
	relayer  domain.ContactRelayer
	validate *validator.Validate
	log      *slog.Logger
}

// NewWebhookUsecase creates a new webhook usecase
func NewWebhookUsecase(relayer domain.ContactRelayer, validate *validator.Validate, log *slog.Logger) domain.WebhookUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if log == nil {
		log = slog.Default()
	}
	return &webhookUsecase{
		relayer:  relayer,
		validate: validate,
		log:      log,
	}
}

// Relay validates the submission, normalizes it and forwards it to HubSpot.
// Validation failures return 400 AppErrors and never reach the relayer.
func (uc *webhookUsecase) Relay(ctx context.Context, sub *domain.Submission) (*domain.RelayResult, error) {
	if sub == nil {
		return nil, apperror.BadRequest(domain.MsgMissingFields)
	}
	if err := uc.validate.StructCtx(ctx, sub); err != nil {
		uc.log.DebugContext(ctx, "Rejected submission", "missing", validation.MissingFields(err), "request_id", requestID(ctx))
		return nil, apperror.BadRequest(domain.MsgMissingFields)
	}

	uc.log.InfoContext(ctx, "Received form data", "submission", sub, "request_id", requestID(ctx))

	// A missing metadata object is reported the same way as a bad timestamp
	if sub.Metadata == nil {
		return nil, apperror.BadRequest(domain.MsgInvalidSubmittedAt)
	}
	submittedAt, err := validation.NormalizeTimestamp(sub.Metadata.SubmittedAt)
	if err != nil {
		return nil, apperror.BadRequest(domain.MsgInvalidSubmittedAt)
	}

	record := domain.ContactRecord{Properties: domain.ContactProperties{
		FirstName:   sub.Name,
		Email:       sub.Email,
		SubmittedAt: submittedAt,
		UserAgent:   sub.Metadata.UserAgent,
	}}

	// The caller hanging up does not abort an in-flight relay; the client timeout bounds it
	resp, err := uc.relayer.CreateContact(context.WithoutCancel(ctx), record)
	if err != nil {
		attrs := []any{"error", err.Error(), "request_id", requestID(ctx)}
		var apiErr *hubspot.APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs, "status", apiErr.StatusCode)
		}
		uc.log.ErrorContext(ctx, "Error sending to HubSpot", attrs...)
		return nil, apperror.New(http.StatusInternalServerError, domain.MsgRelayFailed, err)
	}

	uc.log.InfoContext(ctx, "HubSpot response", "response", resp, "request_id", requestID(ctx))

	return &domain.RelayResult{
		Message:         domain.MsgRelaySucceeded,
		HubSpotResponse: resp,
	}, nil
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
