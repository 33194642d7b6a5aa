package config_test

import (
	"testing"
	"time"

	"github.com/horizonit/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "correct-horse-battery")
	t.Setenv("JWT_SECRET", "a-sufficiently-long-signing-secret")
}

func TestLoad_MissingAdminPasswordFails(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("JWT_SECRET", "a-sufficiently-long-signing-secret")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoad_MissingJWTSecretFails(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "correct-horse-battery")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_ShortJWTSecretRejected(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "correct-horse-battery")
	t.Setenv("JWT_SECRET", "short")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Abuse.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Abuse.LockoutDuration)
	assert.Equal(t, 3, cfg.Abuse.ReviewRateLimit)
	assert.Equal(t, time.Hour, cfg.Abuse.ReviewRateWindow)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiry)
	assert.Equal(t, "memory", cfg.Abuse.ThrottleBackend)
	assert.Empty(t, cfg.Database.URL)
	assert.False(t, cfg.Notify.NotificationsEnabled())
}

func TestLoad_PostgresThrottleRequiresDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("THROTTLE_BACKEND", "postgres")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_UnknownThrottleBackendRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("THROTTLE_BACKEND", "redis")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_LOGIN_ATTEMPTS", "7")
	t.Setenv("LOCKOUT_DURATION", "30m")
	t.Setenv("SITE_ORIGIN", "https://ithorizon.netlify.app")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Abuse.MaxLoginAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Abuse.LockoutDuration)
	assert.Equal(t, "https://ithorizon.netlify.app", cfg.Server.SiteOrigin)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12"}, cfg.Server.TrustedProxies)
}
