package auth

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elskow/chef-auth/internal/config"
)

// NewModule returns the auth module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			// Provide repository
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			// Provide token codec
			fx.Annotate(
				func(config *config.AppConfig, repo Repository) *TokenCodec {
					return NewTokenCodec(&config.Auth, repo)
				},
			),
			// Provide service
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository, codec *TokenCodec) *Service {
					return NewService(&config.Auth, log, repo, codec)
				},
			),
			// Provide handler
			fx.Annotate(
				func(svc *Service, captchas ChallengeVerifier, config *config.AppConfig, log *zap.Logger) *Handler {
					return NewHandler(svc, captchas, &config.Auth, log)
				},
			),
			// Provide middleware
			fx.Annotate(
				func(codec *TokenCodec) *Middleware {
					return NewMiddleware(codec)
				},
			),
		),
	)
}
