package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestStore() *clientstate.Store {
	return clientstate.New([]byte("test-hash-key-0123456789abcdef00"), "bookhub_session", 3600, false)
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedError  string
		expectCookie   bool
	}{
		{
			name: "success persists session",
			body: `{"email":"reader@example.com","password":"secret1"}`,
			setupMocks: func(s *MockService) {
				s.On("Login", mock.Anything, "reader@example.com", "secret1").
					Return(&models.Session{UserID: "user-42", Email: "reader@example.com", AccessToken: "token-abc"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectCookie:   true,
		},
		{
			name:           "invalid json",
			body:           `{"email":`,
			setupMocks:     func(s *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name:           "missing password fails validation",
			body:           `{"email":"reader@example.com"}`,
			setupMocks:     func(s *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "backend rejects credentials verbatim",
			body: `{"email":"reader@example.com","password":"wrong123"}`,
			setupMocks: func(s *MockService) {
				s.On("Login", mock.Anything, "reader@example.com", "wrong123").
					Return(nil, &backendapi.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMocks(service)

			h := New(newNoopLogger(), service, newTestStore())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp["error"])
			}
			if tt.expectCookie {
				assert.NotEmpty(t, rec.Result().Cookies(), "session cookie must be written")
			}
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_ServeHTTP_ReportsPendingIntent(t *testing.T) {
	service := new(MockService)
	service.On("Login", mock.Anything, "reader@example.com", "secret1").
		Return(&models.Session{UserID: "user-42", AccessToken: "token-abc"}, nil).Once()

	store := newTestStore()

	// Клиент пришёл на вход с записанным намерением подписки.
	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	seedState := store.Load(seed)
	seedState.SetIntendedAction(models.PlanMonthly)
	seedRec := httptest.NewRecorder()
	require.NoError(t, seedState.Save(seed, seedRec))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		bytes.NewBufferString(`{"email":"reader@example.com","password":"secret1"}`))
	for _, c := range seedRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()

	New(newNoopLogger(), service, store).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			ContinueSubscription bool `json:"continue_subscription"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.ContinueSubscription)
}
