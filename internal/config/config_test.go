package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "clothing-shop-service", cfg.App.Name)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginAttemptWindow())
	assert.Equal(t, "clothing-shop", cfg.Auth.JWTIssuer)
	assert.Equal(t, "clothing-shop-api", cfg.Auth.JWTAudience)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "5")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_HOST", "127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
}

func TestTokenTTLFallsBackWhenUnset(t *testing.T) {
	var a AuthConfig
	assert.Equal(t, 30*time.Minute, a.TokenTTL())
}
