package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/epdtext-web/internal/domain"
)

// DefaultSendTimeout bounds a single channel send.
const DefaultSendTimeout = 10 * time.Millisecond

// CommandRecorder receives the outcome of every send attempt.
type CommandRecorder interface {
	CommandSent(action string, duration time.Duration)
	CommandFailed(action string, err error, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) CommandSent(string, time.Duration)          {}
func (noopRecorder) CommandFailed(string, error, time.Duration) {}

// CommandService encodes commands and forwards them to the renderer channel.
// It makes exactly one send attempt per call.
type CommandService struct {
	channel  domain.Channel
	timeout  time.Duration
	recorder CommandRecorder
	clock    clockwork.Clock
}

// NewCommandService wires the service to channel. recorder may be nil.
func NewCommandService(channel domain.Channel, timeout time.Duration, recorder CommandRecorder, clock clockwork.Clock) *CommandService {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CommandService{
		channel:  channel,
		timeout:  timeout,
		recorder: recorder,
		clock:    clock,
	}
}

// Send writes cmd's wire form to the channel.
func (s *CommandService) Send(ctx context.Context, cmd domain.Command) error {
	wire := cmd.Wire()
	start := s.clock.Now()

	err := s.channel.Send(ctx, wire, s.timeout)
	elapsed := s.clock.Since(start)
	if err != nil {
		s.recorder.CommandFailed(cmd.Action(), err, elapsed)
		slog.WarnContext(ctx, "Failed to send command", "command", wire, "error", err)
		return fmt.Errorf("failed to send %q: %w", wire, err)
	}

	s.recorder.CommandSent(cmd.Action(), elapsed)
	slog.InfoContext(ctx, "Command sent", "command", wire)
	return nil
}
