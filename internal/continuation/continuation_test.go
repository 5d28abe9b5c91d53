package continuation

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

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CheckAuth(ctx context.Context, token string) (string, bool) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1)
}

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) CheckStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionStatus), args.Error(1)
}

func (m *MockSubscriptionService) CheckTrialEligibility(ctx context.Context, userID string) (*models.TrialEligibility, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrialEligibility), args.Error(1)
}

func (m *MockSubscriptionService) StartTrial(ctx context.Context, userID, email string) (*models.Checkout, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkout), args.Error(1)
}

func (m *MockSubscriptionService) StartPaidSubscription(ctx context.Context, email, userID string, planType models.PlanType) (*models.Checkout, error) {
	args := m.Called(ctx, email, userID, planType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkout), args.Error(1)
}

type MockSessionReader struct {
	mock.Mock
}

func (m *MockSessionReader) Get(token string) (models.Session, bool) {
	args := m.Called(token)
	return args.Get(0).(models.Session), args.Bool(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestState(t *testing.T) *clientstate.State {
	t.Helper()
	store := clientstate.New([]byte("test-hash-key-0123456789abcdef00"), "bookhub_session", 3600, false)
	return store.Load(httptest.NewRequest(http.MethodGet, "/", nil))
}

func noAccess() *models.SubscriptionStatus {
	return &models.SubscriptionStatus{Status: models.StatusNone, HasAccess: false}
}

func TestController_Start_UnauthenticatedRecordsIntent(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)
	auth.On("CheckAuth", mock.Anything, "").Return("", false).Once()

	state := newTestState(t)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Start(context.Background(), state, models.PlanMonthly)

	require.NoError(t, err)
	assert.Equal(t, OutcomeLoginRequired, outcome.Kind)
	assert.Equal(t, "/login", outcome.RedirectURL)
	assert.Equal(t, models.PlanMonthly, state.IntendedAction())
	assert.NotEmpty(t, state.AttemptToken())
	subs.AssertNotCalled(t, "StartPaidSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	auth.AssertExpectations(t)
}

func TestController_Start_AuthenticatedGoesToCheckout(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	auth.On("CheckAuth", mock.Anything, mock.Anything).Return("user-42", true).Once()
	subs.On("CheckStatus", mock.Anything, "user-42").Return(noAccess(), nil).Once()
	sessions.On("Get", mock.Anything).Return(models.Session{Email: "reader@example.com"}, true).Once()
	subs.On("StartPaidSubscription", mock.Anything, "reader@example.com", "user-42", models.PlanYearly).
		Return(&models.Checkout{AuthorizationURL: "https://pay.example/abc", Reference: "ref-1"}, nil).Once()

	state := newTestState(t)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Start(context.Background(), state, models.PlanYearly)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckout, outcome.Kind)
	assert.Equal(t, "https://pay.example/abc", outcome.RedirectURL)
	assert.Equal(t, "ref-1", outcome.Reference)
	assert.Empty(t, state.IntendedAction(), "intent must not survive dispatch")
	subs.AssertExpectations(t)
}

func TestController_Start_AlreadySubscribed(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	auth.On("CheckAuth", mock.Anything, mock.Anything).Return("user-42", true).Once()
	subs.On("CheckStatus", mock.Anything, "user-42").
		Return(&models.SubscriptionStatus{Status: models.StatusActive, HasAccess: true}, nil).Once()

	state := newTestState(t)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Start(context.Background(), state, models.PlanMonthly)

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadySubscribed, outcome.Kind)
	assert.Equal(t, "/dashboard", outcome.RedirectURL)
	subs.AssertNotCalled(t, "StartPaidSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestController_Start_TrialNotEligible(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	auth.On("CheckAuth", mock.Anything, mock.Anything).Return("user-42", true).Once()
	subs.On("CheckStatus", mock.Anything, "user-42").Return(noAccess(), nil).Once()
	sessions.On("Get", mock.Anything).Return(models.Session{Email: "reader@example.com"}, true).Once()
	subs.On("CheckTrialEligibility", mock.Anything, "user-42").
		Return(&models.TrialEligibility{Eligible: false, Reason: "TRIAL_USED", Message: "you have already used your free trial"}, nil).Once()

	state := newTestState(t)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Start(context.Background(), state, models.PlanTrial)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNotEligible, outcome.Kind)
	assert.Equal(t, "you have already used your free trial", outcome.Message)
	assert.Empty(t, state.IntendedAction())
	subs.AssertNotCalled(t, "StartTrial", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_Start_StatusCheckErrorProceedsToCheckout(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	auth.On("CheckAuth", mock.Anything, mock.Anything).Return("user-42", true).Once()
	subs.On("CheckStatus", mock.Anything, "user-42").Return(nil, errors.New("backend down")).Once()
	sessions.On("Get", mock.Anything).Return(models.Session{Email: "reader@example.com"}, true).Once()
	subs.On("StartPaidSubscription", mock.Anything, "reader@example.com", "user-42", models.PlanMonthly).
		Return(&models.Checkout{AuthorizationURL: "https://pay.example/x"}, nil).Once()

	state := newTestState(t)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Start(context.Background(), state, models.PlanMonthly)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckout, outcome.Kind)
	subs.AssertExpectations(t)
}

func TestController_Resume_NoIntent(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	state := newTestState(t)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Resume(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, outcome.Kind)
	auth.AssertNotCalled(t, "CheckAuth", mock.Anything, mock.Anything)
}

func TestController_Resume_DispatchesExactlyOnce(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	auth.On("CheckAuth", mock.Anything, mock.Anything).Return("user-42", true).Once()
	subs.On("CheckStatus", mock.Anything, "user-42").Return(noAccess(), nil).Once()
	sessions.On("Get", mock.Anything).Return(models.Session{Email: "reader@example.com"}, true).Once()
	subs.On("StartPaidSubscription", mock.Anything, "reader@example.com", "user-42", models.PlanMonthly).
		Return(&models.Checkout{AuthorizationURL: "https://pay.example/abc"}, nil).Once()

	state := newTestState(t)
	state.SetIntendedAction(models.PlanMonthly)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Resume(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckout, outcome.Kind)

	// Повторный mount той же страницы: второго списания быть не должно.
	again, err := c.Resume(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, again.Kind)
	subs.AssertNumberOfCalls(t, "StartPaidSubscription", 1)
}

func TestController_Resume_ConsumedAttemptClearsLeftoverIntent(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	state := newTestState(t)
	state.SetIntendedAction(models.PlanTrial)
	require.True(t, state.ConsumeAttempt())

	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Resume(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, outcome.Kind)
	assert.Empty(t, state.IntendedAction())
	auth.AssertNotCalled(t, "CheckAuth", mock.Anything, mock.Anything)
}

func TestController_Resume_AbandonedWithoutLogin(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	auth.On("CheckAuth", mock.Anything, mock.Anything).Return("", false).Once()

	state := newTestState(t)
	state.SetIntendedAction(models.PlanMonthly)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Resume(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, OutcomeAbandoned, outcome.Kind)
	assert.Equal(t, "/login", outcome.RedirectURL)
	assert.Empty(t, state.IntendedAction())
	subs.AssertNotCalled(t, "CheckStatus", mock.Anything, mock.Anything)
}

func TestController_Resume_StartErrorStillClearsIntent(t *testing.T) {
	auth := new(MockAuthService)
	subs := new(MockSubscriptionService)
	sessions := new(MockSessionReader)

	auth.On("CheckAuth", mock.Anything, mock.Anything).Return("user-42", true).Once()
	subs.On("CheckStatus", mock.Anything, "user-42").Return(noAccess(), nil).Once()
	sessions.On("Get", mock.Anything).Return(models.Session{Email: "reader@example.com"}, true).Once()
	subs.On("StartPaidSubscription", mock.Anything, "reader@example.com", "user-42", models.PlanMonthly).
		Return(nil, errors.New("provider timeout")).Once()

	state := newTestState(t)
	state.SetIntendedAction(models.PlanMonthly)
	c := New(auth, subs, sessions, newNoopLogger())

	outcome, err := c.Resume(context.Background(), state)

	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.Empty(t, state.IntendedAction(), "intent must be cleared even on failure")
}
