package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/elskow/chef-auth/internal/config"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// LoadConfig reads the optional toml file at ./config/server and applies
// environment overrides (AUTH_SERVER_PORT, AUTH_AUTH_JWT_SECRET, ...).
func LoadConfig() (*config.AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath("./config/server")

	setDefaults(v)

	v.SetEnvPrefix("AUTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "chef_auth")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.allow_registration", true)
	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.token_expiration", 7*24*time.Hour)
	v.SetDefault("auth.password_min_length", 8)
	v.SetDefault("auth.password_require_alnum", true)
	v.SetDefault("auth.max_failures", 5)
	v.SetDefault("auth.lock_duration", 10*time.Minute)

	v.SetDefault("captcha.ttl", 5*time.Minute)
	v.SetDefault("captcha.cooldown_window", 5*time.Second)
	v.SetDefault("captcha.cooldown_max_requests", 3)
}
