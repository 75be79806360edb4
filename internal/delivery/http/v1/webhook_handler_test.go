package v1_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hubspot-webhook-relay/config"
	v1 "hubspot-webhook-relay/internal/delivery/http/v1"
	"hubspot-webhook-relay/internal/domain"
	"hubspot-webhook-relay/internal/usecase"
	"hubspot-webhook-relay/pkg/hubspot"
	"hubspot-webhook-relay/pkg/logger"
	"hubspot-webhook-relay/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHubSpot records every create-contact call and answers with a fixed response
type fakeHubSpot struct {
	mu     sync.Mutex
	calls  []domain.ContactRecord
	status int
	body   string
}

func (f *fakeHubSpot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var record domain.ContactRecord
	_ = json.NewDecoder(r.Body).Decode(&record)

	f.mu.Lock()
	f.calls = append(f.calls, record)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeHubSpot) Calls() []domain.ContactRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ContactRecord(nil), f.calls...)
}

type testServer struct {
	router *gin.Engine
	crm    *fakeHubSpot
	logs   *bytes.Buffer
}

func newTestServer(t *testing.T, status int, body string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	crm := &fakeHubSpot{status: status, body: body}
	crmSrv := httptest.NewServer(crm)
	t.Cleanup(crmSrv.Close)

	cfg := &config.Config{
		HubSpotAPIKey:      "test-token",
		HubSpotBaseURL:     crmSrv.URL,
		HubSpotTimeout:     2 * time.Second,
		MaxBodyBytes:       1024,
		CORSAllowedOrigins: []string{"*"},
	}

	var logs bytes.Buffer
	log := logger.New(&logs, "debug")
	uc := usecase.NewWebhookUsecase(hubspot.NewClient(cfg), validation.New(), log)
	router := v1.NewRouter(v1.RouterDeps{WebhookUC: uc, Config: cfg, Logger: log})

	return &testServer{router: router, crm: crm, logs: &logs}
}

func (s *testServer) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

const adaSubmission = `{
	"name": "Ada",
	"email": "ada@example.com",
	"metadata": {"submittedAt": "2024-03-01T00:00:00.000Z", "userAgent": "test-agent"}
}`

func TestWebhookEndToEnd(t *testing.T) {
	s := newTestServer(t, http.StatusCreated, `{"id":"123"}`)

	w := s.post(adaSubmission)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Data sent to HubSpot","hubspotResponse":{"id":"123"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(domain.RequestIDHeader))

	calls := s.crm.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.ContactProperties{
		FirstName:   "Ada",
		Email:       "ada@example.com",
		SubmittedAt: "2024-03-01T00:00:00.000Z",
		UserAgent:   "test-agent",
	}, calls[0].Properties)

	assert.NotContains(t, s.logs.String(), "test-token")
}

func TestWebhookMissingRequiredFields(t *testing.T) {
	bodies := map[string]string{
		"no name":     `{"email":"ada@example.com","metadata":{"submittedAt":"2024-01-15T10:00:00Z"}}`,
		"empty email": `{"name":"Ada","email":"","metadata":{"submittedAt":"2024-01-15T10:00:00Z"}}`,
		"empty body":  ``,
		"null body":   `null`,
		"empty obj":   `{}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, http.StatusCreated, `{"id":"123"}`)

			w := s.post(body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
			assert.Empty(t, s.crm.Calls())
		})
	}
}

func TestWebhookInvalidSubmittedAt(t *testing.T) {
	bodies := map[string]string{
		"unparseable":      `{"name":"Ada","email":"ada@example.com","metadata":{"submittedAt":"last tuesday"}}`,
		"missing field":    `{"name":"Ada","email":"ada@example.com","metadata":{}}`,
		"missing metadata": `{"name":"Ada","email":"ada@example.com"}`,
		"null metadata":    `{"name":"Ada","email":"ada@example.com","metadata":null}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, http.StatusCreated, `{"id":"123"}`)

			w := s.post(body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid submittedAt date"}`, w.Body.String())
			assert.Empty(t, s.crm.Calls())
		})
	}
}

func TestWebhookNormalizesTimestampAndUserAgent(t *testing.T) {
	s := newTestServer(t, http.StatusCreated, `{"id":"9"}`)

	w := s.post(`{"name":"Ada","email":"ada@example.com","metadata":{"submittedAt":"2024-01-15T10:00:00Z"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	calls := s.crm.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "2024-01-15T10:00:00.000Z", calls[0].Properties.SubmittedAt)
	assert.Equal(t, "", calls[0].Properties.UserAgent)
}

func TestWebhookDuplicateSubmissionsRelayTwice(t *testing.T) {
	s := newTestServer(t, http.StatusCreated, `{"id":"123"}`)

	first := s.post(adaSubmission)
	second := s.post(adaSubmission)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)

	calls := s.crm.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1])
}

func TestWebhookRelayFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusConflict, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			s := newTestServer(t, status, `{"status":"error","message":"nope"}`)

			w := s.post(adaSubmission)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"Failed to send data to HubSpot"}`, w.Body.String())
			assert.Len(t, s.crm.Calls(), 1, "no retry")
			assert.Contains(t, s.logs.String(), "Error sending to HubSpot")
			assert.NotContains(t, s.logs.String(), "test-token")
		})
	}
}

func TestWebhookMalformedJSON(t *testing.T) {
	s := newTestServer(t, http.StatusCreated, `{"id":"123"}`)

	// Wrong JSON types are rejected before the required-field and timestamp checks
	for _, body := range []string{
		`{"name":`,
		`{"name":42,"email":"ada@example.com"}`,
		`{"name":"Ada","email":"ada@example.com","metadata":"x"}`,
		`[]`,
	} {
		w := s.post(body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Invalid JSON payload"}`, w.Body.String(), body)
	}
	assert.Empty(t, s.crm.Calls())
}

func TestWebhookPayloadTooLarge(t *testing.T) {
	s := newTestServer(t, http.StatusCreated, `{"id":"123"}`)

	body := `{"name":"Ada","email":"ada@example.com","metadata":{"submittedAt":"2024-01-15T10:00:00Z","userAgent":"` +
		strings.Repeat("x", 2048) + `"}}`
	w := s.post(body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"Payload too large"}`, w.Body.String())
	assert.Empty(t, s.crm.Calls())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, http.StatusCreated, `{}`)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","hubspot":"configured"}`, w.Body.String())
}
