package auth

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUsernameTaken        = errors.New("username already taken")
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrInvalidInput         = errors.New("invalid input")

	// ErrTokenInvalid covers signature failure, expiry, structural
	// corruption, and version mismatch alike.
	ErrTokenInvalid = errors.New("invalid token")
)

// WeakPasswordError reports a password policy violation.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return e.Reason
}

// AccountLockedError reports a login rejected by an active lockout.
type AccountLockedError struct {
	RemainingSeconds int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, retry in %d seconds", e.RemainingSeconds)
}
