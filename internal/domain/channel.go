package domain

import (
	"context"
	"time"
)

// Channel is the send side of the message channel the renderer reads from.
// Implementations must be safe for concurrent Send calls and must not block
// longer than timeout.
type Channel interface {
	Send(ctx context.Context, message string, timeout time.Duration) error
	Close() error
}

// ChannelStats is a point-in-time view of the queue depth.
type ChannelStats struct {
	Pending  int
	Capacity int
}

// Full reports whether a send would currently fail for lack of space.
func (s ChannelStats) Full() bool {
	return s.Capacity > 0 && s.Pending >= s.Capacity
}
