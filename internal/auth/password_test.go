package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("testpassword123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "testpassword123", hash)

	assert.True(t, CheckPasswordHash("testpassword123", hash))
	assert.False(t, CheckPasswordHash("wrongpassword1", hash))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		minLength    int
		requireAlnum bool
		wantErr      bool
	}{
		{
			name:         "valid password",
			password:     "Passw0rd",
			minLength:    8,
			requireAlnum: true,
		},
		{
			name:         "too short",
			password:     "Pw1",
			minLength:    8,
			requireAlnum: true,
			wantErr:      true,
		},
		{
			name:         "empty password",
			password:     "",
			minLength:    8,
			requireAlnum: true,
			wantErr:      true,
		},
		{
			name:         "letters only",
			password:     "passwordpass",
			minLength:    8,
			requireAlnum: true,
			wantErr:      true,
		},
		{
			name:         "digits only",
			password:     "123456789012",
			minLength:    8,
			requireAlnum: true,
			wantErr:      true,
		},
		{
			name:         "letters only allowed when alnum not required",
			password:     "passwordpass",
			minLength:    8,
			requireAlnum: false,
		},
		{
			name:         "exactly minimum length",
			password:     "abcdef12",
			minLength:    8,
			requireAlnum: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password, tt.minLength, tt.requireAlnum)
			if tt.wantErr {
				var weak *WeakPasswordError
				require.ErrorAs(t, err, &weak)
				assert.NotEmpty(t, weak.Reason)
				return
			}
			assert.NoError(t, err)
		})
	}
}
