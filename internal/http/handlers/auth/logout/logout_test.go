package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestStore() *clientstate.Store {
	return clientstate.New([]byte("test-hash-key-0123456789abcdef00"), "bookhub_session", 3600, false)
}

func seededRequest(t *testing.T, store *clientstate.Store) *http.Request {
	t.Helper()

	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	state := store.Load(seed)
	state.SetUserID("user-42")
	state.SetAuthToken("token-abc")
	state.SetIntendedAction(models.PlanMonthly)
	rec := httptest.NewRecorder()
	require.NoError(t, state.Save(seed, rec))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestHandler_ServeHTTP_ClearsStateEvenWhenBackendFails(t *testing.T) {
	tests := []struct {
		name       string
		logoutErr  error
	}{
		{name: "backend logout succeeds", logoutErr: nil},
		{name: "backend logout fails", logoutErr: errors.New("backend down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			service.On("Logout", mock.Anything, "token-abc").Return(tt.logoutErr).Once()

			store := newTestStore()
			req := seededRequest(t, store)
			rec := httptest.NewRecorder()

			New(newNoopLogger(), service, store).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			next := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, c := range rec.Result().Cookies() {
				next.AddCookie(c)
			}
			state := store.Load(next)
			assert.Empty(t, state.UserID(), "cached user must not survive logout")
			assert.Empty(t, state.AuthToken())
			assert.Empty(t, state.IntendedAction())
			service.AssertExpectations(t)
		})
	}
}
