package subscription

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(backendapi.NewClient(server.URL, 5*time.Second), newNoopLogger())
}

func TestGateway_CheckStatus(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/check-subscription/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user-42", body["user_id"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"trialing","has_access":true,"in_trial":true}`))
	})

	status, err := g.CheckStatus(context.Background(), "user-42")

	require.NoError(t, err)
	assert.True(t, status.HasAccess)
	assert.True(t, status.InTrial)
}

func TestGateway_CheckStatus_TransportErrorPropagates(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	status, err := g.CheckStatus(context.Background(), "user-42")

	require.Error(t, err)
	assert.Nil(t, status)
}

func TestGateway_StartTrial_BusinessRefusal(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sub-starttrial/", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"TRIAL_USED","message":"you have already used your free trial"}`))
	})

	checkout, err := g.StartTrial(context.Background(), "user-42", "reader@example.com")

	require.Error(t, err)
	assert.Nil(t, checkout)
	apiErr, ok := backendapi.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsBusinessRule())
	assert.Equal(t, "TRIAL_USED", apiErr.Code)
	assert.Equal(t, "you have already used your free trial", apiErr.Message)
}

func TestGateway_StartPaidSubscription(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/start-subscription/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "yearly", body["plan_type"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"authorization_url":"https://pay.example/abc","reference":"ref-1"}`))
	})

	checkout, err := g.StartPaidSubscription(context.Background(), "reader@example.com", "user-42", "yearly")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", checkout.AuthorizationURL)
	assert.Equal(t, "ref-1", checkout.Reference)
}

func TestGateway_CheckTrialEligibility(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/check-trial-eligibility/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"eligible":false,"reason":"TRIAL_USED","message":"trial already used"}`))
	})

	eligibility, err := g.CheckTrialEligibility(context.Background(), "user-42")

	require.NoError(t, err)
	assert.False(t, eligibility.Eligible)
	assert.Equal(t, "TRIAL_USED", eligibility.Reason)
}
