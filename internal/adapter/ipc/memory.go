package ipc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/epdtext-web/internal/domain"
)

// DefaultMemoryCapacity matches the Linux default mq_maxmsg.
const DefaultMemoryCapacity = 10

// MemoryQueue is an in-process bounded channel with the PosixQueue error contract.
type MemoryQueue struct {
	messages chan string
	done     chan struct{}
	clock    clockwork.Clock

	closeOnce sync.Once
}

func NewMemoryQueue(capacity int, clock clockwork.Clock) *MemoryQueue {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryQueue{
		messages: make(chan string, capacity),
		done:     make(chan struct{}),
		clock:    clock,
	}
}

// Send enqueues message, waiting at most timeout for free capacity.
func (q *MemoryQueue) Send(ctx context.Context, message string, timeout time.Duration) error {
	select {
	case <-q.done:
		return domain.ErrChannelClosed
	default:
	}

	select {
	case q.messages <- message:
		return nil
	default:
	}

	timer := q.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case q.messages <- message:
		return nil
	case <-timer.Chan():
		return domain.ErrChannelFull
	case <-q.done:
		return domain.ErrChannelClosed
	case <-ctx.Done():
		return fmt.Errorf("send aborted: %w", ctx.Err())
	}
}

// Receive blocks until a message is available, the queue is closed or ctx ends.
// Messages still buffered at Close are delivered before ErrChannelClosed.
func (q *MemoryQueue) Receive(ctx context.Context) (string, error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	default:
	}

	select {
	case msg := <-q.messages:
		return msg, nil
	case <-q.done:
		return "", domain.ErrChannelClosed
	case <-ctx.Done():
		return "", fmt.Errorf("receive aborted: %w", ctx.Err())
	}
}

// Len reports the number of buffered messages.
func (q *MemoryQueue) Len() int {
	return len(q.messages)
}

func (q *MemoryQueue) Stats() (domain.ChannelStats, error) {
	select {
	case <-q.done:
		return domain.ChannelStats{}, domain.ErrChannelClosed
	default:
	}
	return domain.ChannelStats{Pending: len(q.messages), Capacity: cap(q.messages)}, nil
}

func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}
