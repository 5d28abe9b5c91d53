package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	t.Setenv("CONFIG_PATH", tmpFile.Name())
}

func TestMustLoad_ValidConfig(t *testing.T) {
	writeConfig(t, `
env: test
backend_api:
  base_url: "https://backend.example.com"
  timeout: 5s
redis_connection:
  addressredis: "localhost:6379"
  db: 1
  catalog_ttl: 15m
http_server:
  addresshttp: ":8080"
  timeouthttp: 30s
  idle_timeout: 60s
client_session:
  cookie_name: "bookhub_session"
  hash_key: "test-hash-key"
  max_age: 86400
activation:
  poll_interval: 2s
  poll_budget: 5
`)

	cfg := MustLoad()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "https://backend.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "localhost:6379", cfg.AddressRedis)
	assert.Equal(t, 1, cfg.DB)
	assert.Equal(t, 15*time.Minute, cfg.CatalogTTL)
	assert.Equal(t, ":8080", cfg.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "bookhub_session", cfg.CookieName)
	assert.Equal(t, "test-hash-key", cfg.HashKey)
	assert.Equal(t, 86400, cfg.MaxAge)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 5, cfg.PollBudget)
}

func TestMustLoad_Defaults(t *testing.T) {
	writeConfig(t, `
backend_api:
  base_url: "https://backend.example.com"
redis_connection:
  addressredis: "localhost:6379"
client_session:
  hash_key: "test-hash-key"
`)

	cfg := MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.AddressHTTP)
	assert.Equal(t, 10*time.Minute, cfg.CatalogTTL)
	assert.Equal(t, "bookhub_session", cfg.CookieName)
	assert.Equal(t, 2592000, cfg.MaxAge)
	assert.False(t, cfg.Secure)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 5, cfg.PollBudget)
}

func TestConfig_String(t *testing.T) {
	writeConfig(t, `
env: test
backend_api:
  base_url: "https://backend.example.com"
redis_connection:
  addressredis: "localhost:6379"
client_session:
  hash_key: "secret-hash-key"
`)

	out := MustLoad().String()

	assert.Contains(t, out, "Env: test")
	assert.Contains(t, out, "https://backend.example.com")
	assert.NotContains(t, out, "secret-hash-key", "hash key must not be printed")
}
