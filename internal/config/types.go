package config

import "time"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type AuthConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	AllowRegistration    bool          `mapstructure:"allow_registration"`
	JWTSecret            string        `mapstructure:"jwt_secret"`
	TokenExpiration      time.Duration `mapstructure:"token_expiration"`
	PasswordMinLength    int           `mapstructure:"password_min_length"`
	PasswordRequireAlnum bool          `mapstructure:"password_require_alnum"`
	MaxFailures          int           `mapstructure:"max_failures"`
	LockDuration         time.Duration `mapstructure:"lock_duration"`
}

type CaptchaConfig struct {
	TTL                 time.Duration `mapstructure:"ttl"`
	CooldownWindow      time.Duration `mapstructure:"cooldown_window"`
	CooldownMaxRequests int           `mapstructure:"cooldown_max_requests"`
}

type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Captcha  CaptchaConfig  `mapstructure:"captcha"`
}
