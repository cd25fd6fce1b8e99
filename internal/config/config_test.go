package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, "memory", cfg.Session.Driver)
	assert.Equal(t, 120, cfg.Session.TTL)
	assert.Equal(t, "rfq_session", cfg.Session.CookieName)
	assert.Equal(t, "storefront_leads", cfg.Redis.ConsumerGroup)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 5, cfg.Intake.MaxAttempts)
	assert.Equal(t, 10, cfg.Intake.RetryDelay)
	assert.Equal(t, 300, cfg.Redis.MinIdleTime)
	assert.Empty(t, cfg.Intake.Endpoints)
	assert.Empty(t, cfg.Catalog.FeedDir)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: 0.0.0.0
session:
  driver: redis
  ttl: 30
intake:
  endpoints:
    - https://crm.example.com/leads
    - https://backup.example.com/leads
  max_attempts: 3
database:
  name: leads
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, "redis", cfg.Session.Driver)
	assert.Equal(t, 30, cfg.Session.TTL)
	assert.Equal(t, []string{"https://crm.example.com/leads", "https://backup.example.com/leads"}, cfg.Intake.Endpoints)
	assert.Equal(t, 3, cfg.Intake.MaxAttempts)
	assert.Contains(t, cfg.Database.DSN(), "dbname=leads")
	assert.Equal(t, 5, cfg.Intake.MaxRequestsPerSecond, "unset keys keep their defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_UnknownSessionDriver(t *testing.T) {
	path := writeConfig(t, "session:\n  driver: cookie\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown session driver "cookie"`)
}

func TestLoad_InvalidMaxAttempts(t *testing.T) {
	path := writeConfig(t, "intake:\n  max_attempts: 0\n")

	_, err := Load(path)
	assert.EqualError(t, err, "intake.max_attempts must be at least 1")
}

func TestLoad_MinIdleTimeMustOutlastDelivery(t *testing.T) {
	path := writeConfig(t, `
redis:
  min_idle_time: 120
intake:
  timeout: 30
  max_retries: 0
`)

	_, err := Load(path)
	assert.EqualError(t, err, "redis.min_idle_time must be greater than 120 seconds for the configured intake timeout and retries")

	path = writeConfig(t, `
redis:
  min_idle_time: 121
intake:
  timeout: 30
  max_retries: 0
`)
	_, err = Load(path)
	assert.NoError(t, err)
}

func TestDeliveryBudget(t *testing.T) {
	cfg := IntakeConfig{Timeout: 30, MaxRetries: 2}
	assert.Equal(t, 2*(3*30*time.Second+2*IntakeRetryMaxWait), cfg.DeliveryBudget())

	cfg.MaxRetries = -1
	assert.Equal(t, 60*time.Second, cfg.DeliveryBudget())
}
