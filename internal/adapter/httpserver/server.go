package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/epdtext-web/internal/adapter/metrics"
	"github.com/pscheid92/epdtext-web/internal/domain"
	"github.com/pscheid92/epdtext-web/internal/platform/config"
	"github.com/pscheid92/epdtext-web/web"
)

// CommandSender delivers one command to the renderer.
type CommandSender interface {
	Send(ctx context.Context, cmd domain.Command) error
}

// Authenticator checks HTTP Basic credentials.
type Authenticator interface {
	Authenticate(username, password string, ok bool) bool
}

// RejectionRecorder counts requests refused for an invalid screen name.
type RejectionRecorder interface {
	ScreenNameRejectedFor(action string)
}

// QueueInspector reports the renderer queue depth.
type QueueInspector interface {
	Stats() (domain.ChannelStats, error)
}

// Dependencies are the collaborators a Server needs. Rejections, Queue,
// Registry and HealthChecks are optional.
type Dependencies struct {
	Commands     CommandSender
	Auth         Authenticator
	Rejections   RejectionRecorder
	Queue        QueueInspector
	Registry     *prometheus.Registry
	HealthChecks []HealthCheck
	Clock        clockwork.Clock
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	commands     CommandSender
	auth         Authenticator
	rejections   RejectionRecorder
	queue        QueueInspector
	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck

	templates    *template.Template
	sessionStore *sessions.CookieStore

	clock     clockwork.Clock
	startTime time.Time
}

func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	templates, err := template.ParseFS(web.TemplateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	srv := newServer(cfg, deps, templates)
	srv.registerRoutes()
	return srv, nil
}

func newServer(cfg *config.Config, deps Dependencies, templates *template.Template) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		commands:     deps.Commands,
		auth:         deps.Auth,
		rejections:   deps.Rejections,
		queue:        deps.Queue,
		registry:     deps.Registry,
		healthChecks: deps.HealthChecks,
		templates:    templates,
		sessionStore: setupSessionStore(cfg),
		clock:        clock,
		startTime:    clock.Now(),
	}
	if deps.Registry != nil {
		srv.httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP exposes the router, mainly for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) renderTemplate(c echo.Context, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "Template execution failed", "path", c.Request().URL.Path, "error", err)
		if err := c.String(http.StatusInternalServerError, "Failed to render page"); err != nil {
			return fmt.Errorf("failed to send error response: %w", err)
		}
		return nil
	}
	if err := c.HTMLBlob(http.StatusOK, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send HTML response: %w", err)
	}
	return nil
}

func setupSessionStore(cfg *config.Config) *sessions.CookieStore {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return sessionStore
}
