package domain

import (
	"context"
	"encoding/json"
)

// Submission is the form data posted to the webhook
type Submission struct {
	Name     string              `json:"name" validate:"required"`
	Email    string              `json:"email" validate:"required"`
	Metadata *SubmissionMetadata `json:"metadata,omitempty"`
}

// SubmissionMetadata carries client-side details captured by the form
type SubmissionMetadata struct {
	SubmittedAt string `json:"submittedAt"`
	UserAgent   string `json:"userAgent,omitempty"`
}

// ContactProperties are the HubSpot contact properties written per submission
type ContactProperties struct {
	FirstName   string `json:"firstname"`
	Email       string `json:"email"`
	SubmittedAt string `json:"submitted_at"`
	UserAgent   string `json:"user_agent"`
}

// ContactRecord is the body of a HubSpot create-contact request
type ContactRecord struct {
	Properties ContactProperties `json:"properties"`
}

// RelayResult is returned to the caller after a successful relay
type RelayResult struct {
	Message         string          `json:"message"`
	HubSpotResponse json.RawMessage `json:"hubspotResponse"`
}

// ContactRelayer sends a contact record to the CRM and returns its raw response body
type ContactRelayer interface {
	CreateContact(ctx context.Context, record ContactRecord) (json.RawMessage, error)
}

// WebhookUsecase defines the interface for form submission handling
type WebhookUsecase interface {
	// Relay validates a submission and forwards it to the CRM
	Relay(ctx context.Context, sub *Submission) (*RelayResult, error)
}
