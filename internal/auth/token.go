package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/elskow/chef-auth/internal/config"
)

type Claims struct {
	Username     string `json:"username"`
	TokenVersion int    `json:"token_version"`
	jwt.RegisteredClaims
}

// TokenCodec mints and validates session tokens. Every token carries the
// account's token version; bumping the stored version invalidates all
// previously issued tokens without a revocation list.
type TokenCodec struct {
	config     *config.AuthConfig
	repository Repository
}

func NewTokenCodec(config *config.AuthConfig, repo Repository) *TokenCodec {
	return &TokenCodec{
		config:     config,
		repository: repo,
	}
}

func (c *TokenCodec) Mint(user *User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.JWTSecret))
}

// Validate checks signature and expiry, then re-reads the account and
// compares token versions. Any failure collapses to ErrTokenInvalid; a
// store error propagates unchanged.
func (c *TokenCodec) Validate(tokenString string) (*User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(c.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := c.repository.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	if claims.TokenVersion != user.TokenVersion {
		return nil, ErrTokenInvalid
	}

	return user, nil
}
