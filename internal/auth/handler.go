package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/elskow/chef-auth/internal/api"
	"github.com/elskow/chef-auth/internal/config"
)

// ChallengeVerifier consumes a captcha challenge. Implemented by the
// captcha service; every call consumes the challenge whatever the outcome.
type ChallengeVerifier interface {
	Verify(id uint, answer string) (bool, error)
}

type Handler struct {
	service  *Service
	captchas ChallengeVerifier
	config   *config.AuthConfig
	log      *zap.Logger
}

func NewHandler(service *Service, captchas ChallengeVerifier, config *config.AuthConfig, log *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		captchas: captchas,
		config:   config,
		log:      log,
	}
}

type credentialsRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CaptchaID   uint   `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeCredentials(w, r, &req) {
		return
	}

	if !h.consumeCaptcha(w, req.CaptchaID, req.CaptchaCode) {
		return
	}

	result, err := h.service.Register(req.Username, req.Password)
	if err != nil {
		h.writeRegisterError(w, err)
		return
	}

	api.WriteData(w, result)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeCredentials(w, r, &req) {
		return
	}

	if !h.consumeCaptcha(w, req.CaptchaID, req.CaptchaCode) {
		return
	}

	ip := api.ClientIP(r)
	var ipPtr *string
	if ip != "" {
		ipPtr = &ip
	}

	result, err := h.service.Login(req.Username, req.Password, ipPtr)
	if err != nil {
		var locked *AccountLockedError
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			api.WriteError(w, http.StatusUnauthorized, "invalid username or password")
		case errors.As(err, &locked):
			minutes := (locked.RemainingSeconds + 59) / 60
			api.WriteError(w, http.StatusUnauthorized,
				fmt.Sprintf("too many attempts, retry in %d minutes", minutes))
		default:
			h.log.Error("login failed", zap.String("username", req.Username), zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	api.WriteData(w, result)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	api.WriteData(w, user.Public())
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		api.WriteError(w, http.StatusBadRequest, "missing parameters")
		return
	}

	if err := ValidatePasswordStrength(req.NewPassword, h.config.PasswordMinLength, h.config.PasswordRequireAlnum); err != nil {
		var weak *WeakPasswordError
		if errors.As(err, &weak) {
			api.WriteError(w, http.StatusBadRequest, weak.Reason)
			return
		}
		api.WriteError(w, http.StatusBadRequest, "password does not meet requirements")
		return
	}

	token, err := h.service.ChangePassword(user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		var weak *WeakPasswordError
		switch {
		case errors.Is(err, ErrUserNotFound):
			api.WriteError(w, http.StatusBadRequest, "user not found")
		case errors.Is(err, ErrInvalidCredentials):
			api.WriteError(w, http.StatusBadRequest, "old password is incorrect")
		case errors.As(err, &weak):
			api.WriteError(w, http.StatusBadRequest, weak.Reason)
		default:
			h.log.Error("change password failed", zap.Uint("user_id", user.ID), zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	api.WriteData(w, map[string]string{"token": token})
}

// Config exposes the public view of the authentication policy.
func (h *Handler) Config(w http.ResponseWriter, _ *http.Request) {
	api.WriteData(w, map[string]interface{}{
		"enabled":                true,
		"allow_registration":     h.config.AllowRegistration,
		"password_min_length":    h.config.PasswordMinLength,
		"password_require_alnum": h.config.PasswordRequireAlnum,
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	api.WriteData(w, map[string]string{"status": "ok"})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request, req *credentialsRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	if req.Username == "" || req.Password == "" || req.CaptchaID == 0 || req.CaptchaCode == "" {
		api.WriteError(w, http.StatusBadRequest, "missing parameters")
		return false
	}
	return true
}

func (h *Handler) consumeCaptcha(w http.ResponseWriter, id uint, code string) bool {
	ok, err := h.captchas.Verify(id, code)
	if err != nil {
		h.log.Error("captcha verification failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "captcha verification failed")
		return false
	}
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "captcha is wrong or expired")
		return false
	}
	return true
}

func (h *Handler) writeRegisterError(w http.ResponseWriter, err error) {
	var weak *WeakPasswordError
	switch {
	case errors.Is(err, ErrRegistrationDisabled):
		api.WriteError(w, http.StatusBadRequest, "registration is currently disabled")
	case errors.Is(err, ErrInvalidInput):
		api.WriteError(w, http.StatusBadRequest, "username must not be empty")
	case errors.Is(err, ErrUsernameTaken):
		api.WriteError(w, http.StatusBadRequest, "username already taken")
	case errors.As(err, &weak):
		api.WriteError(w, http.StatusBadRequest, weak.Reason)
	default:
		h.log.Error("registration failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "registration failed")
	}
}
