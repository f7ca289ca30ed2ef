package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/elskow/chef-auth/internal/api"
	"github.com/elskow/chef-auth/internal/auth"
	"github.com/elskow/chef-auth/internal/captcha"
	"github.com/elskow/chef-auth/internal/config"
)

type Server struct {
	config     *config.AppConfig
	log        *zap.Logger
	httpServer *http.Server
}

type Params struct {
	fx.In

	Config         *config.AppConfig
	Logger         *zap.Logger
	AuthHandler    *auth.Handler
	CaptchaHandler *captcha.Handler
	Middleware     *auth.Middleware
}

func NewServer(p Params) *Server {
	mux := http.NewServeMux()

	if p.Config.Auth.Enabled {
		registerRoutes(mux, p)
	} else {
		registerDisabledRoutes(mux)
	}

	server := &Server{
		config: p.Config,
		log:    p.Logger,
		httpServer: &http.Server{
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}

	return server
}

func isProtectedEndpoint(path string) bool {
	isPublic, exists := api.PublicEndpoints[path]
	return !exists || !isPublic
}

func registerRoutes(mux *http.ServeMux, p Params) {
	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, api.CaptchaImage, p.CaptchaHandler.Image},
		{http.MethodGet, api.AuthConfig, p.AuthHandler.Config},
		{http.MethodGet, api.AuthHealth, p.AuthHandler.Health},
		{http.MethodPost, api.AuthRegister, p.AuthHandler.Register},
		{http.MethodPost, api.AuthLogin, p.AuthHandler.Login},
		{http.MethodGet, api.AuthMe, p.AuthHandler.Me},
		{http.MethodPost, api.AuthChangePassword, p.AuthHandler.ChangePassword},
	}

	for _, route := range routes {
		handler := route.handler
		if isProtectedEndpoint(route.path) {
			handler = p.Middleware.Guard(handler)
		}
		mux.HandleFunc(route.method+" "+route.path, handler)
	}
}

// registerDisabledRoutes answers every auth route with 503 except the
// config probe, which reports that authentication is off.
func registerDisabledRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+api.AuthConfig, func(w http.ResponseWriter, _ *http.Request) {
		api.WriteData(w, map[string]interface{}{"enabled": false})
	})
	disabled := func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusServiceUnavailable, "authentication is not enabled")
	}
	mux.HandleFunc("/api/auth/", disabled)
	mux.HandleFunc("/api/captcha/", disabled)
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.log.Info("Starting HTTP server",
		zap.String("address", addr),
		zap.Object("config", serverConfigToField(s.config)),
	)

	if err := s.httpServer.Serve(lis); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

func serverConfigToField(config *config.AppConfig) zapcore.ObjectMarshaler {
	return zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("environment", os.Getenv("APP_ENV"))
		enc.AddBool("auth_enabled", config.Auth.Enabled)
		enc.AddBool("allow_registration", config.Auth.AllowRegistration)
		return nil
	})
}

func (s *Server) Stop() {
	s.log.Info("shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("forced shutdown", zap.Error(err))
	}
}
