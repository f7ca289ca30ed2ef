package api

// Authentication service routes
const (
	CaptchaImage       = "/api/captcha/image"
	AuthConfig         = "/api/auth/config"
	AuthHealth         = "/api/auth/health"
	AuthRegister       = "/api/auth/register"
	AuthLogin          = "/api/auth/login"
	AuthMe             = "/api/auth/me"
	AuthChangePassword = "/api/auth/change-password"
)

// PublicEndpoints defines routes that don't require authentication
var PublicEndpoints = map[string]bool{
	CaptchaImage: true,
	AuthConfig:   true,
	AuthHealth:   true,
	AuthRegister: true,
	AuthLogin:    true,
}
