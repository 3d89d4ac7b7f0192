package httpserver

import (
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/epdtext-web/internal/domain"
	"github.com/pscheid92/epdtext-web/internal/platform/version"
)

type systemInfo struct {
	Hostname  string
	Uptime    string
	QueueName string
	Backend   string
	Pending   string
	Version   string
}

type indexPage struct {
	Infos   []string
	Errors  []string
	Buttons []domain.Command
	System  systemInfo
}

func (s *Server) handleIndex(c echo.Context) error {
	infos, errs := s.takeFlashes(c)

	buttons := make([]domain.Command, 0, domain.ButtonCount)
	for i := 0; i < domain.ButtonCount; i++ {
		b, _ := domain.NewButton(i)
		buttons = append(buttons, b)
	}

	return s.renderTemplate(c, "index.html", indexPage{
		Infos:   infos,
		Errors:  errs,
		Buttons: buttons,
		System:  s.systemInfo(),
	})
}

func (s *Server) systemInfo() systemInfo {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := systemInfo{
		Hostname:  hostname,
		Uptime:    s.clock.Since(s.startTime).Truncate(time.Second).String(),
		QueueName: s.config.IPCQueueName,
		Backend:   s.config.IPCBackend,
		Version:   version.Get().Version,
		Pending:   "unknown",
	}
	if s.queue != nil {
		if stats, err := s.queue.Stats(); err == nil {
			info.Pending = fmt.Sprintf("%d of %d", stats.Pending, stats.Capacity)
		} else {
			info.Pending = "unavailable"
		}
	}
	return info
}
