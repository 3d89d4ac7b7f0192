package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const sessionName = "epdtext-session"

type severity string

const (
	severityInfo  severity = "info"
	severityError severity = "error"
)

// redirectHome stores a one-shot status message and sends the browser to "/".
// A session that cannot be saved loses the message but not the redirect.
func (s *Server) redirectHome(c echo.Context, sev severity, message string) error {
	ctx := c.Request().Context()

	// Get returns a fresh session alongside the error when the cookie does not decode.
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.DebugContext(ctx, "Discarding unreadable session cookie", "error", err)
	}
	session.AddFlash(message, string(sev))
	if err := session.Save(c.Request(), c.Response()); err != nil {
		slog.ErrorContext(ctx, "Failed to save flash message", "error", err)
	}

	return c.Redirect(http.StatusFound, "/")
}

// takeFlashes returns and clears pending messages of both severities.
func (s *Server) takeFlashes(c echo.Context) (infos, errs []string) {
	ctx := c.Request().Context()

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.DebugContext(ctx, "Discarding unreadable session cookie", "error", err)
	}

	infos = toStrings(session.Flashes(string(severityInfo)))
	errs = toStrings(session.Flashes(string(severityError)))
	if len(infos) == 0 && len(errs) == 0 {
		return nil, nil
	}

	if err := session.Save(c.Request(), c.Response()); err != nil {
		slog.ErrorContext(ctx, "Failed to clear flash messages", "error", err)
	}
	return infos, errs
}

func toStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
