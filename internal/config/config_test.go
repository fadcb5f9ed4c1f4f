package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("IDENTITY_STALE_SECONDS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", cfg.Gateway.BaseURL)
	require.Equal(t, 5*time.Minute, cfg.Gateway.IdentityStale())
	require.Equal(t, 7*24*time.Hour, cfg.Auth.AccessTokenTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com", cfg.Gateway.BaseURL)
	require.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	require.True(t, cfg.Cookie.Secure)
	require.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	_, err := config.Load()
	require.Error(t, err)
}
