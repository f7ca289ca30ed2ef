package captcha

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/elskow/chef-auth/internal/api"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Image issues a fresh challenge for the requester.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	ip := api.ClientIP(r)
	var ipPtr *string
	if ip != "" {
		ipPtr = &ip
	}

	issued, err := h.service.Issue(ipPtr)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			api.WriteError(w, http.StatusTooManyRequests, "too many requests, try again later")
			return
		}
		h.log.Error("captcha issuance failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "failed to generate captcha")
		return
	}

	api.WriteData(w, issued)
}
