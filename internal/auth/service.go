package auth

import (
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elskow/chef-auth/internal/config"
)

// dummyHash is compared against when the username is unknown, so that the
// unknown-user path costs as much as a real password check.
var dummyHash, _ = HashPassword("dummy")

type Service struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
	codec      *TokenCodec
}

// LoginResult carries a freshly minted token and the sanitized user view.
type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

func NewService(config *config.AuthConfig, log *zap.Logger, repo Repository, codec *TokenCodec) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
		codec:      codec,
	}
}

func (s *Service) Codec() *TokenCodec {
	return s.codec
}

func (s *Service) Register(username, password string) (*LoginResult, error) {
	if !s.config.AllowRegistration {
		return nil, ErrRegistrationDisabled
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidInput
	}

	if err := ValidatePasswordStrength(password, s.config.PasswordMinLength, s.config.PasswordRequireAlnum); err != nil {
		return nil, err
	}

	if _, err := s.repository.GetUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.repository.CreateUser(user); err != nil {
		return nil, err
	}

	token, err := s.codec.Mint(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", username))

	return &LoginResult{Token: token, User: user.Public()}, nil
}

func (s *Service) Login(username, password string, ip *string) (*LoginResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.repository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Unknown usernames are logged but never feed the lockout
			// counter, and the response is indistinguishable from a
			// wrong password.
			CheckPasswordHash(password, dummyHash)
			if err := s.recordFailure(username, ip); err != nil {
				return nil, err
			}
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Lock check happens before the password compare.
	if remaining := lockRemaining(user, time.Now()); remaining > 0 {
		return nil, &AccountLockedError{RemainingSeconds: remaining}
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		if err := s.recordFailure(username, ip); err != nil {
			return nil, err
		}
		if err := s.applyFailedAttempt(user); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.repository.ResetFailures(user.ID); err != nil {
		return nil, err
	}
	if err := s.repository.TouchLastLogin(user.ID); err != nil {
		return nil, err
	}

	fresh, err := s.repository.GetUserByID(user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Mint(fresh)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: fresh.Public()}, nil
}

func (s *Service) ChangePassword(userID uint, oldPassword, newPassword string) (string, error) {
	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	if !CheckPasswordHash(oldPassword, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	if err := ValidatePasswordStrength(newPassword, s.config.PasswordMinLength, s.config.PasswordRequireAlnum); err != nil {
		return "", err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return "", err
	}

	// The version bump invalidates every previously issued token.
	if err := s.repository.UpdatePassword(user.ID, hash, user.TokenVersion+1); err != nil {
		return "", err
	}

	updated, err := s.repository.GetUserByID(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Info("password changed", zap.Uint("user_id", user.ID))

	return s.codec.Mint(updated)
}

// applyFailedAttempt increments the failure counter and sets the lockout
// timestamp once the threshold is reached. Two racing logins may both read
// the same counter; the threshold is a soft guarantee.
func (s *Service) applyFailedAttempt(user *User) error {
	attempts := user.FailedAttempts + 1

	var lockUntil *time.Time
	if attempts >= s.config.MaxFailures {
		t := time.Now().Add(s.config.LockDuration)
		lockUntil = &t
		s.log.Warn("account locked",
			zap.String("username", user.Username),
			zap.Int("failed_attempts", attempts))
	}

	return s.repository.UpdateFailedAttempts(user.ID, attempts, lockUntil)
}

func (s *Service) recordFailure(username string, ip *string) error {
	var name *string
	if username != "" {
		name = &username
	}
	return s.repository.RecordFailure(name, ip)
}

func lockRemaining(user *User, now time.Time) int {
	if user.LockUntil == nil || !user.LockUntil.After(now) {
		return 0
	}
	return int(math.Ceil(user.LockUntil.Sub(now).Seconds()))
}
