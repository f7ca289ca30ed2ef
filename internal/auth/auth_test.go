package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/elskow/chef-auth/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	assert.NoError(t, err)
	return logger
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		Enabled:              true,
		AllowRegistration:    true,
		JWTSecret:            "test-secret-key",
		TokenExpiration:      time.Hour,
		PasswordMinLength:    8,
		PasswordRequireAlnum: true,
		MaxFailures:          5,
		LockDuration:         10 * time.Minute,
	}
}

func newTestService(t *testing.T) (*Service, *mockRepository) {
	return newTestServiceWithConfig(t, newTestConfig())
}

func newTestServiceWithConfig(t *testing.T, cfg *config.AuthConfig) (*Service, *mockRepository) {
	repo := newMockRepository()
	codec := NewTokenCodec(cfg, repo)
	return NewService(cfg, newTestLogger(t), repo, codec), repo
}
