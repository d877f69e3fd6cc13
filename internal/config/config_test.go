package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("EMPLOYETICA_PRIMARY.ENV", "local")
	t.Setenv("EMPLOYETICA_SERVER.PORT", "5000")
	t.Setenv("EMPLOYETICA_SERVER.READ_TIMEOUT", "30")
	t.Setenv("EMPLOYETICA_SERVER.WRITE_TIMEOUT", "30")
	t.Setenv("EMPLOYETICA_SERVER.IDLE_TIMEOUT", "60")
	t.Setenv("EMPLOYETICA_SERVER.CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://employetica.web.app")
	t.Setenv("EMPLOYETICA_DATABASE.URI", "mongodb://localhost:27017")
	t.Setenv("EMPLOYETICA_REDIS.ADDRESS", "localhost:6379")
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://employetica.web.app"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, DefaultDatabaseName, cfg.Database.Name)
	assert.Equal(t, DefaultConnectTimeout, cfg.Database.ConnectTimeout)
	assert.Equal(t, AuthProviderFirebase, cfg.Auth.Provider)
	require.NotNil(t, cfg.Integration)
	assert.Equal(t, DefaultCurrency, cfg.Integration.Currency)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "employetica", cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.True(t, cfg.IsLocal())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMPLOYETICA_DATABASE.URI", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_ClerkNeedsSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMPLOYETICA_AUTH.PROVIDER", "clerk")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clerk_secret_key")

	t.Setenv("EMPLOYETICA_AUTH.CLERK_SECRET_KEY", "sk_test_123")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, AuthProviderClerk, cfg.Auth.Provider)
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMPLOYETICA_AUTH.PROVIDER", "auth0")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.HealthChecks.Timeout = 10 * time.Millisecond
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestObservabilityConfig_HasCheck(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HasCheck("database"))
	assert.True(t, cfg.HasCheck("redis"))
	assert.False(t, cfg.HasCheck("stripe"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HasCheck("database"))
}
