package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
	"github.com/magabrotheeeer/bookhub-web/internal/sessioncache"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newGateway(t *testing.T, handler http.HandlerFunc) (*Gateway, *sessioncache.Cache) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sessions := sessioncache.New(time.Minute)
	return New(backendapi.NewClient(server.URL, 5*time.Second), sessions, newNoopLogger()), sessions
}

func TestGateway_CheckAuth(t *testing.T) {
	g, sessions := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/me/", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"user-42","email":"reader@example.com"}}`))
	})

	userID, ok := g.CheckAuth(context.Background(), "token-abc")

	require.True(t, ok)
	assert.Equal(t, "user-42", userID)

	session, found := sessions.Get("token-abc")
	require.True(t, found, "successful check must populate the session cache")
	assert.Equal(t, "reader@example.com", session.Email)
}

func TestGateway_CheckAuth_SubFallback(t *testing.T) {
	g, _ := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"sub":"user-7"}}`))
	})

	userID, ok := g.CheckAuth(context.Background(), "token-abc")

	require.True(t, ok)
	assert.Equal(t, "user-7", userID)
}

func TestGateway_CheckAuth_UnauthorizedIsNotAnError(t *testing.T) {
	g, _ := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	})

	userID, ok := g.CheckAuth(context.Background(), "stale-token")

	assert.False(t, ok)
	assert.Empty(t, userID)
}

func TestGateway_Login_VerbatimBackendError(t *testing.T) {
	g, _ := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid email or password"}`))
	})

	session, err := g.Login(context.Background(), "reader@example.com", "wrong")

	require.Error(t, err)
	assert.Nil(t, session)
	apiErr, ok := backendapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestGateway_Logout_ClearsCacheEvenOnNetworkFailure(t *testing.T) {
	g, sessions := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sessions.Put("token-abc", models.Session{UserID: "user-42", AccessToken: "token-abc"})

	err := g.Logout(context.Background(), "token-abc")

	require.Error(t, err)
	_, found := sessions.Get("token-abc")
	assert.False(t, found, "cache entry must not survive logout")
}

func TestGateway_CheckAuth_LocallyExpiredTokenSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	g, sessions := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"user-42"}}`))
	})
	token := signToken(t, time.Now().Add(-time.Hour))
	sessions.Put(token, models.Session{UserID: "user-42", AccessToken: token})

	userID, ok := g.CheckAuth(context.Background(), token)

	assert.False(t, ok)
	assert.Empty(t, userID)
	assert.Equal(t, int32(0), calls.Load(), "expired token must not reach the backend")
	_, found := sessions.Get(token)
	assert.False(t, found, "stale cache entry must be dropped")
}

func TestGateway_RefreshToken_RotatesCacheEntry(t *testing.T) {
	g, sessions := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/refresh-token/", r.URL.Path)
		assert.Equal(t, "Bearer old-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"user-42"},"session":{"access_token":"new-token","expires_at":4102444800}}`))
	})
	sessions.Put("old-token", models.Session{UserID: "user-42", AccessToken: "old-token"})

	session, err := g.RefreshToken(context.Background(), "old-token")

	require.NoError(t, err)
	assert.Equal(t, "new-token", session.AccessToken)
	_, found := sessions.Get("old-token")
	assert.False(t, found, "old token must leave the cache")
	rotated, found := sessions.Get("new-token")
	require.True(t, found)
	assert.Equal(t, "user-42", rotated.UserID)
}

func TestGateway_TokenExpired(t *testing.T) {
	g := &Gateway{log: newNoopLogger()}

	expired := signToken(t, time.Now().Add(-time.Hour))
	fresh := signToken(t, time.Now().Add(time.Hour))

	assert.True(t, g.TokenExpired(expired))
	assert.False(t, g.TokenExpired(fresh))
	assert.False(t, g.TokenExpired(""), "empty token is not expired")
	assert.False(t, g.TokenExpired("not-a-jwt"), "unparseable token is not expired")
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-42",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
