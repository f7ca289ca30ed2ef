package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/elskow/chef-auth/internal/api"
)

// Define a custom type for context keys
type contextKey string

const (
	// UserContextKey is the key used to store the authenticated user in the context
	UserContextKey contextKey = "user"
)

type Middleware struct {
	codec *TokenCodec
}

func NewMiddleware(codec *TokenCodec) *Middleware {
	return &Middleware{
		codec: codec,
	}
}

// Guard validates the bearer token before any identity-requiring handler
// runs. The authenticated user is placed on the request context.
func (m *Middleware) Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			api.WriteError(w, http.StatusUnauthorized, "not logged in")
			return
		}

		user, err := m.codec.Validate(token)
		if err != nil {
			if errors.Is(err, ErrTokenInvalid) {
				api.WriteError(w, http.StatusUnauthorized, "session expired, please log in again")
				return
			}
			api.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), UserContextKey, user)))
	}
}

// UserFromContext returns the user stored by Guard.
func UserFromContext(ctx context.Context) (*User, error) {
	user, ok := ctx.Value(UserContextKey).(*User)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
