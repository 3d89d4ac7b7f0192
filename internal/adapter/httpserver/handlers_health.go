package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/epdtext-web/internal/platform/errors"
	"github.com/pscheid92/epdtext-web/internal/platform/version"
)

const readinessProbeTimeout = 2 * time.Second

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// QueueHealthCheck fails while the queue is closed or full, i.e. while the
// renderer is gone or not consuming.
func QueueHealthCheck(q QueueInspector) HealthCheck {
	return HealthCheck{
		Name: "ipc_queue",
		Check: func(_ context.Context) error {
			stats, err := q.Stats()
			if err != nil {
				return apperrors.UnavailableError("renderer queue unavailable", err)
			}
			if stats.Full() {
				return apperrors.UnavailableError(fmt.Sprintf("renderer queue is full (%d messages)", stats.Pending), nil)
			}
			return nil
		},
	}
}

// Probes stay outside the auth gate; they trigger no actions.
func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
}

func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status": "ok",
		"uptime": s.clock.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

// handleReadiness answers 503 through the error middleware when a check fails.
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			return readinessError(hc.Name, err)
		}
	}

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func readinessError(check string, err error) *apperrors.Error {
	var structured *apperrors.Error
	if !errors.As(err, &structured) {
		structured = apperrors.UnavailableError(check+" check failed", err)
	}
	return structured.WithField("check", check)
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.Get()); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
