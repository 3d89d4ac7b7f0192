package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/epdtext-web/internal/domain"
	"github.com/pscheid92/epdtext-web/internal/platform/retry"
)

const (
	BackendPosix  = "posix"
	BackendMemory = "memory"
)

// Options selects and parameterizes a channel backend.
type Options struct {
	Backend        string
	QueueName      string
	MemoryCapacity int

	// OpenAttempts and OpenBackoff cover the boot race where the renderer has
	// not created its queue yet. Only a missing queue is retried.
	OpenAttempts int
	OpenBackoff  time.Duration
}

// Open returns the channel described by opts. A PosixQueue that cannot be
// opened is an error; there is no fallback to the memory backend.
func Open(ctx context.Context, opts Options, clock clockwork.Clock) (domain.Channel, error) {
	switch opts.Backend {
	case BackendPosix, "":
		q, err := openWithRetry(ctx, opts, clock, func() (*PosixQueue, error) {
			return OpenPosix(opts.QueueName)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open message queue: %w", err)
		}
		slog.InfoContext(ctx, "Message queue opened", "backend", BackendPosix, "queue", opts.QueueName)
		return q, nil
	case BackendMemory:
		slog.WarnContext(ctx, "Using in-memory message queue; commands will not reach the renderer", "capacity", opts.MemoryCapacity)
		return NewMemoryQueue(opts.MemoryCapacity, clock), nil
	default:
		return nil, fmt.Errorf("unknown IPC backend %q", opts.Backend)
	}
}

func openWithRetry(ctx context.Context, opts Options, clock clockwork.Clock, open func() (*PosixQueue, error)) (*PosixQueue, error) {
	attempts := opts.OpenAttempts
	if attempts < 1 {
		attempts = 1
	}

	policy := retry.Policy{
		MaxAttempts:    attempts,
		InitialBackoff: opts.OpenBackoff,
		Clock:          clock,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.WarnContext(ctx, "Message queue not available yet", "queue", opts.QueueName, "attempt", attempt, "backoff", backoff, "error", err)
		},
	}

	return retry.Do(ctx, policy, classifyOpenErr, open)
}

func classifyOpenErr(err error) retry.Action {
	if errors.Is(err, ErrQueueNotFound) {
		return retry.Retry
	}
	return retry.Stop
}
