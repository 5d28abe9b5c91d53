package sessioncache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

func TestCache_PutGetClear(t *testing.T) {
	c := New(time.Minute)

	c.Put("token-abc", models.Session{UserID: "user-42", Email: "reader@example.com"})

	session, found := c.Get("token-abc")
	require.True(t, found)
	assert.Equal(t, "user-42", session.UserID)
	assert.Equal(t, "reader@example.com", session.Email)

	c.Clear("token-abc")
	_, found = c.Get("token-abc")
	assert.False(t, found)
}

func TestCache_MissingToken(t *testing.T) {
	c := New(time.Minute)

	_, found := c.Get("unknown")
	assert.False(t, found)
}

func TestCache_ExpiredSessionIsDropped(t *testing.T) {
	c := New(time.Minute)

	c.Put("token-abc", models.Session{
		UserID:    "user-42",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})

	_, found := c.Get("token-abc")
	assert.False(t, found, "session past its token expiry must not be served")

	c.Put("token-def", models.Session{
		UserID:    "user-42",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})

	_, found = c.Get("token-def")
	assert.True(t, found)
}

func TestCache_EntryExpires(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Put("token-abc", models.Session{UserID: "user-42"})
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("token-abc")
	assert.False(t, found)
}
