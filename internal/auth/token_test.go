package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	svc, repo := newTestService(t)
	result, err := svc.Register("alice", "Passw0rd")
	require.NoError(t, err)

	stored, err := repo.GetUserByUsername("alice")
	require.NoError(t, err)

	user, err := svc.Codec().Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	assert.Equal(t, stored.Username, user.Username)
	assert.Equal(t, stored.TokenVersion, user.TokenVersion)
}

func TestTokenCodec_Validate(t *testing.T) {
	tests := []struct {
		name       string
		setupToken func(t *testing.T, svc *Service, repo *mockRepository) string
	}{
		{
			name: "garbage token",
			setupToken: func(t *testing.T, _ *Service, _ *mockRepository) string {
				return "invalid.token.here"
			},
		},
		{
			name: "empty token",
			setupToken: func(t *testing.T, _ *Service, _ *mockRepository) string {
				return ""
			},
		},
		{
			name: "expired token",
			setupToken: func(t *testing.T, svc *Service, repo *mockRepository) string {
				cfg := newTestConfig()
				cfg.TokenExpiration = -time.Hour
				expired := NewTokenCodec(cfg, repo)

				result, err := svc.Register("alice", "Passw0rd")
				require.NoError(t, err)
				user, err := repo.GetUserByID(result.User.ID)
				require.NoError(t, err)

				token, err := expired.Mint(user)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "token signed with a different secret",
			setupToken: func(t *testing.T, svc *Service, repo *mockRepository) string {
				cfg := newTestConfig()
				cfg.JWTSecret = "some-other-secret"
				foreign := NewTokenCodec(cfg, repo)

				result, err := svc.Register("alice", "Passw0rd")
				require.NoError(t, err)
				user, err := repo.GetUserByID(result.User.ID)
				require.NoError(t, err)

				token, err := foreign.Mint(user)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "account no longer exists",
			setupToken: func(t *testing.T, svc *Service, repo *mockRepository) string {
				user := &User{ID: 999, Username: "ghost"}
				token, err := svc.Codec().Mint(user)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "stale token version",
			setupToken: func(t *testing.T, svc *Service, repo *mockRepository) string {
				result, err := svc.Register("alice", "Passw0rd")
				require.NoError(t, err)
				repo.setUser("alice", func(u *User) { u.TokenVersion++ })
				return result.Token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			token := tt.setupToken(t, svc, repo)

			_, err := svc.Codec().Validate(token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestTokenCodec_FreshTokenAfterVersionBump(t *testing.T) {
	svc, repo := newTestService(t)
	result, err := svc.Register("alice", "Passw0rd")
	require.NoError(t, err)

	newToken, err := svc.ChangePassword(result.User.ID, "Passw0rd", "NewPassw0rd")
	require.NoError(t, err)

	_, err = svc.Codec().Validate(result.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	user, err := svc.Codec().Validate(newToken)
	require.NoError(t, err)

	stored, err := repo.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, stored.TokenVersion, user.TokenVersion)
}
