package httpserver

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/epdtext-web/internal/domain"
)

const invalidScreenMessage = "Invalid screen name. Only alphanumeric, underscore, hyphen, and dot allowed."

type fixedAction struct {
	path    string
	command domain.Command
}

type screenAction struct {
	path   string
	action string
	build  func(domain.ScreenName) domain.Command
}

func fixedActions() []fixedAction {
	actions := []fixedAction{
		{"/next_screen", domain.Next{}},
		{"/previous_screen", domain.Previous{}},
		{"/reload", domain.Reload{}},
	}
	for i := 0; i < domain.ButtonCount; i++ {
		button, _ := domain.NewButton(i)
		actions = append(actions, fixedAction{"/" + button.Action(), button})
	}
	return actions
}

var screenActions = []screenAction{
	{"/screen", "screen", domain.NewSetScreen},
	{"/add_screen", "add_screen", domain.NewAddScreen},
	{"/remove_screen", "remove_screen", domain.NewRemoveScreen},
}

func (s *Server) registerControlRoutes(g *echo.Group) {
	for _, a := range fixedActions() {
		g.GET(a.path, s.handleFixed(a.command))
	}
	for _, a := range screenActions {
		g.GET(a.path, s.handleScreen(a))
	}
}

func (s *Server) handleFixed(cmd domain.Command) echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.dispatch(c, cmd)
	}
}

// handleScreen validates the "screen" query parameter before any command
// string is built from it.
func (s *Server) handleScreen(a screenAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.QueryParam("screen")
		name, err := domain.ParseScreenName(raw)
		if err != nil {
			slog.WarnContext(c.Request().Context(), "Rejected screen name",
				"action", a.action, "screen", truncate(raw, domain.MaxScreenNameLen), "error", err)
			if s.rejections != nil {
				s.rejections.ScreenNameRejectedFor(a.action)
			}
			return s.redirectHome(c, severityError, invalidScreenMessage)
		}
		return s.dispatch(c, a.build(name))
	}
}

func (s *Server) dispatch(c echo.Context, cmd domain.Command) error {
	if err := s.commands.Send(c.Request().Context(), cmd); err != nil {
		return s.redirectHome(c, severityError, fmt.Sprintf("Failed to send '%s' message to epdtext", cmd.Label()))
	}
	return s.redirectHome(c, severityInfo, fmt.Sprintf("Sent '%s' message to epdtext", cmd.Label()))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
