package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/core"
)

type stubRunner struct {
	got      core.AuditInput
	response core.AuditResponse
}

func (s *stubRunner) Run(ctx context.Context, input core.AuditInput) core.AuditResponse {
	s.got = input
	return s.response
}

func validBody() map[string]any {
	return map[string]any{
		"website_url":     "https://acmewidgets.co.uk",
		"business_name":   "Acme Widgets",
		"industry":        "Manufacturing",
		"country":         "United Kingdom",
		"city":            []string{"Leeds"},
		"target_audience": "Procurement managers",
	}
}

func postAudit(t *testing.T, handler *AuditHandler, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/audit", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuditHandlerRunsValidInput(t *testing.T) {
	runner := &stubRunner{response: core.AuditResponse{
		Success: true,
		Message: "AI-powered audit completed successfully",
	}}
	handler := NewAuditHandler(runner, zap.NewNop())

	rec := postAudit(t, handler, validBody())

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp core.AuditResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)

	// String and list coercion both land as lists.
	require.Equal(t, core.StringList{"United Kingdom"}, runner.got.Country)
	require.Equal(t, core.StringList{"Leeds"}, runner.got.City)
}

func TestAuditHandlerRejectsMissingFields(t *testing.T) {
	handler := NewAuditHandler(&stubRunner{}, zap.NewNop())

	body := validBody()
	delete(body, "website_url")
	delete(body, "business_name")

	rec := postAudit(t, handler, body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Equal(t, "Validation failed", resp.Message)
	require.Contains(t, resp.Errors, "website_url")
	require.Contains(t, resp.Errors, "business_name")
	require.Equal(t, []string{"The website_url field is required."}, resp.Errors["website_url"])
}

func TestAuditHandlerRejectsBadURL(t *testing.T) {
	handler := NewAuditHandler(&stubRunner{}, zap.NewNop())

	body := validBody()
	body["website_url"] = "not a url"

	rec := postAudit(t, handler, body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "must be a valid URL")
}

func TestAuditHandlerRejectsMalformedJSON(t *testing.T) {
	handler := NewAuditHandler(&stubRunner{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/audit", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid JSON body")
}
