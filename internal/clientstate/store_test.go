package clientstate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

func newTestStore() *Store {
	return New([]byte("test-hash-key-0123456789abcdef00"), "bookhub_session", 3600, false)
}

func TestState_RoundTrip(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	state := store.Load(req)
	state.SetUserID("user-42")
	state.SetAuthToken("token-abc")
	state.SetIntendedAction(models.PlanMonthly)

	rec := httptest.NewRecorder()
	require.NoError(t, state.Save(req, rec))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	loaded := store.Load(next)

	assert.Equal(t, "user-42", loaded.UserID())
	assert.Equal(t, "token-abc", loaded.AuthToken())
	assert.Equal(t, models.PlanMonthly, loaded.IntendedAction())
	assert.NotEmpty(t, loaded.AttemptToken())
}

func TestState_MissingCookieGivesEmptyState(t *testing.T) {
	store := newTestStore()

	state := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, state.UserID())
	assert.Empty(t, state.AuthToken())
	assert.Empty(t, state.IntendedAction())
	assert.Empty(t, state.AttemptToken())
}

func TestState_TamperedCookieGivesEmptyState(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "bookhub_session", Value: "garbage"})
	state := store.Load(req)

	assert.Empty(t, state.UserID())
	assert.Empty(t, state.IntendedAction())
}

func TestState_ConsumeAttemptOnlyOnce(t *testing.T) {
	store := newTestStore()
	state := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	state.SetIntendedAction(models.PlanTrial)
	assert.NotEmpty(t, state.AttemptToken())

	assert.True(t, state.ConsumeAttempt())
	assert.False(t, state.ConsumeAttempt(), "second consume must fail")
	assert.Empty(t, state.AttemptToken())

	// Намерение при этом остаётся до явной очистки.
	assert.Equal(t, models.PlanTrial, state.IntendedAction())
}

func TestState_SetIntendedActionReplacesAttemptToken(t *testing.T) {
	store := newTestStore()
	state := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	state.SetIntendedAction(models.PlanMonthly)
	first := state.AttemptToken()
	state.SetIntendedAction(models.PlanYearly)
	second := state.AttemptToken()

	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
	assert.Equal(t, models.PlanYearly, state.IntendedAction())
}

func TestState_UnknownIntendedValueIgnored(t *testing.T) {
	store := newTestStore()
	state := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	state.SetIntendedAction(models.PlanType("weird"))

	assert.Empty(t, state.IntendedAction())
}

func TestState_ClearIntendedActionIsIdempotent(t *testing.T) {
	store := newTestStore()
	state := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	state.SetIntendedAction(models.PlanMonthly)
	state.ClearIntendedAction()
	state.ClearIntendedAction()

	assert.Empty(t, state.IntendedAction())
	assert.Empty(t, state.AttemptToken())
}

func TestState_ClearSessionWipesEverything(t *testing.T) {
	store := newTestStore()
	state := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	state.SetUserID("user-42")
	state.SetAuthToken("token-abc")
	state.SetIntendedAction(models.PlanYearly)

	state.ClearSession()

	assert.Empty(t, state.UserID())
	assert.Empty(t, state.AuthToken())
	assert.Empty(t, state.IntendedAction())
	assert.Empty(t, state.AttemptToken())
}
