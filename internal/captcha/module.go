package captcha

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elskow/chef-auth/internal/auth"
	"github.com/elskow/chef-auth/internal/config"
)

// NewModule returns the captcha module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			// Provide repository
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			// Provide renderer
			fx.Annotate(
				func() Renderer {
					return NewRenderer()
				},
			),
			// Provide service
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository, renderer Renderer) *Service {
					return NewService(&config.Captcha, log, repo, renderer)
				},
			),
			// The auth handlers consume challenges through this interface
			fx.Annotate(
				func(svc *Service) auth.ChallengeVerifier {
					return svc
				},
			),
			// Provide handler
			fx.Annotate(
				func(svc *Service, log *zap.Logger) *Handler {
					return NewHandler(svc, log)
				},
			),
		),
	)
}
