package usecase

import (
	"context"

	"hubspot-webhook-relay/config"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	hubspotConfigured bool
}

func NewHealthUsecase(cfg *config.Config) HealthUsecase {
	return &healthUsecase{hubspotConfigured: cfg.HubSpotAPIKey != ""}
}

// Check reports liveness. A missing HubSpot token degrades, but does not fail, the check.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":  "ok",
		"hubspot": "configured",
	}
	if !u.hubspotConfigured {
		status["hubspot"] = "missing_api_key"
	}
	return status
}
