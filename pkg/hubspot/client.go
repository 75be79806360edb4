package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hubspot-webhook-relay/config"
	"hubspot-webhook-relay/internal/domain"
)

const (
	DefaultBaseURL = "https://api.hubapi.com"
	contactsPath   = "/crm/v3/objects/contacts"

	// HubSpot error bodies are small; cap what we keep for logging
	maxErrorBody = 4 << 10
)

// Client creates contacts through the HubSpot CRM v3 API
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// APIError is returned when HubSpot answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot API error (status %d): %s", e.StatusCode, e.Body)
}

// NewClient creates a HubSpot client from the application config
func NewClient(cfg *config.Config) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.HubSpotTimeout})
}

// NewClientWithHTTP lets callers supply their own transport
func NewClientWithHTTP(cfg *config.Config, httpClient *http.Client) *Client {
	baseURL := strings.TrimRight(cfg.HubSpotBaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.HubSpotAPIKey,
		timeout:    cfg.HubSpotTimeout,
		httpClient: httpClient,
	}
}

// CreateContact posts a single contact record. There is exactly one attempt.
func (c *Client) CreateContact(ctx context.Context, record domain.ContactRecord) (json.RawMessage, error) {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+contactsPath, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach hubspot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read hubspot response: %w", err)
	}
	return toRawJSON(body)
}

// toRawJSON keeps JSON bodies verbatim and wraps anything else as a JSON string
func toRawJSON(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage(`""`), nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed), nil
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to encode hubspot response: %w", err)
	}
	return quoted, nil
}
