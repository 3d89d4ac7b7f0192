package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/epdtext-web/internal/platform/correlation"
	apperrors "github.com/pscheid92/epdtext-web/internal/platform/errors"
)

const (
	authRealm           = "epdtext-web"
	authRequiredMessage = "Authentication required. Please login to access epdtext-web."
)

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.HeaderName))
		c.Response().Header().Set(correlation.HeaderName, id)
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// requireAuth is the single Basic auth gate. A denied request gets the same
// 401 whichever half of the credential pair was wrong.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, password, ok := c.Request().BasicAuth()
		if s.auth.Authenticate(username, password, ok) {
			return next(c)
		}

		if ok {
			slog.WarnContext(c.Request().Context(), "Authentication failed", "path", c.Request().URL.Path, "remote_ip", c.RealIP())
		}
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="`+authRealm+`"`)
		if err := c.String(http.StatusUnauthorized, authRequiredMessage); err != nil {
			return fmt.Errorf("failed to send auth challenge: %w", err)
		}
		return nil
	}
}

func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			return HandleError(c, err)
		}
	}
}

func HandleError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	structuredErr := apperrors.AsStructuredError(err)
	logError(c, structuredErr)
	if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}

func logError(c echo.Context, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}
	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause)
	}

	ctx := c.Request().Context()
	if err.Type == apperrors.TypeUnavailable {
		slog.WarnContext(ctx, "Dependency unavailable", attrs...)
		return
	}
	slog.ErrorContext(ctx, "Internal error", attrs...)
}
