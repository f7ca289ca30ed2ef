package captcha

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/elskow/chef-auth/internal/config"
)

// ErrRateLimited is returned when an IP exceeds the issuance window.
var ErrRateLimited = errors.New("too many captcha requests")

type Service struct {
	config     *config.CaptchaConfig
	log        *zap.Logger
	repository Repository
	renderer   Renderer
}

func NewService(config *config.CaptchaConfig, log *zap.Logger, repo Repository, renderer Renderer) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
		renderer:   renderer,
	}
}

// Issue renders a new challenge and persists its hashed code. Challenges
// are never refunded: a failed login downstream still counts against the
// issuance window.
func (s *Service) Issue(ip *string) (*IssuedChallenge, error) {
	if ip != nil && *ip != "" {
		since := time.Now().Add(-s.config.CooldownWindow)
		count, err := s.repository.CountRecentByIP(*ip, since)
		if err != nil {
			return nil, err
		}
		if count >= int64(s.config.CooldownMaxRequests) {
			return nil, ErrRateLimited
		}
	}

	code, image, err := s.renderer.Render()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.ToUpper(code)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	challenge := &Challenge{
		CodeHash:  string(hash),
		IPAddress: ip,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.repository.Create(challenge); err != nil {
		return nil, err
	}

	return &IssuedChallenge{
		ID:        challenge.ID,
		Image:     image,
		ExpiresIn: int(s.config.TTL.Seconds()),
	}, nil
}

// Verify consumes the challenge on every call, success or failure; a
// challenge answers at most one verification. Unknown ids fail without a
// write. Wrong, expired, and already-consumed challenges are
// indistinguishable to the caller.
func (s *Service) Verify(id uint, answer string) (bool, error) {
	challenge, err := s.repository.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return false, nil
		}
		return false, err
	}

	if challenge.Consumed || challenge.ExpiresAt.Before(time.Now()) {
		if err := s.repository.MarkConsumed(id); err != nil {
			return false, err
		}
		return false, nil
	}

	match := bcrypt.CompareHashAndPassword(
		[]byte(challenge.CodeHash),
		[]byte(strings.ToUpper(answer)),
	) == nil

	if err := s.repository.MarkConsumed(id); err != nil {
		return false, err
	}

	return match, nil
}
