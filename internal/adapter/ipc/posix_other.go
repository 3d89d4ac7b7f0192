//go:build !linux

package ipc

import (
	"context"
	"time"

	"github.com/pscheid92/epdtext-web/internal/domain"
)

// PosixQueue is unavailable outside linux; OpenPosix always fails.
type PosixQueue struct{}

func OpenPosix(string) (*PosixQueue, error) {
	return nil, ErrUnsupported
}

func (q *PosixQueue) Name() string { return "" }

func (q *PosixQueue) Send(context.Context, string, time.Duration) error { return ErrUnsupported }

func (q *PosixQueue) Close() error { return nil }

func (q *PosixQueue) Stats() (domain.ChannelStats, error) { return domain.ChannelStats{}, ErrUnsupported }
