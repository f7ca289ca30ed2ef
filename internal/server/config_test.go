package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Auth.Enabled)
	assert.True(t, cfg.Auth.AllowRegistration)
	assert.Equal(t, 8, cfg.Auth.PasswordMinLength)
	assert.True(t, cfg.Auth.PasswordRequireAlnum)
	assert.Equal(t, 5, cfg.Auth.MaxFailures)
	assert.Equal(t, 10*time.Minute, cfg.Auth.LockDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenExpiration)
	assert.Equal(t, 5*time.Minute, cfg.Captcha.TTL)
	assert.Equal(t, 5*time.Second, cfg.Captcha.CooldownWindow)
	assert.Equal(t, 3, cfg.Captcha.CooldownMaxRequests)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_AUTH_MAX_FAILURES", "7")
	t.Setenv("AUTH_AUTH_JWT_SECRET", "from-env")
	t.Setenv("AUTH_CAPTCHA_COOLDOWN_MAX_REQUESTS", "10")
	t.Setenv("AUTH_SERVER_PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Auth.MaxFailures)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 10, cfg.Captcha.CooldownMaxRequests)
	assert.Equal(t, "9090", cfg.Server.Port)
}
