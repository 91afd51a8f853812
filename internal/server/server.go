package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"mixup/internal/handlers"
	applog "mixup/internal/log"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Session        SessionConfig
	Database       *gorm.DB
	CatalogWorkers int
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
		"corsOrigins", len(cfg.AllowedOrigins),
	)

	sessionManager := newSessionManager(cfg.Session)

	handlers.Configure(sessionManager, cfg.Database)
	handlers.ConfigureCatalog(cfg.CatalogWorkers)

	applog.Debug(context.Background(), "handler dependencies configured", "catalogWorkers", cfg.CatalogWorkers)

	handler := withCORS(cfg.AllowedOrigins, withRequestID(sessionManager.LoadAndSave(newRouter())))

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func newSessionManager(cfg SessionConfig) *scs.SessionManager {
	if cfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		cfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		cfg.CookieName = "mixup_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Lifetime
	sessionManager.Cookie.Name = cfg.CookieName
	sessionManager.Cookie.Domain = cfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", cfg.CookieName,
		"cookieDomain", cfg.CookieDomain,
		"cookieSecure", cfg.CookieSecure,
	)
	return sessionManager
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Info(context.Background(), "server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
