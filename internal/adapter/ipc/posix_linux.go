//go:build linux

package ipc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/pscheid92/epdtext-web/internal/domain"
	"golang.org/x/sys/unix"
)

// PosixQueue is a write-only, non-blocking handle to a POSIX message queue.
type PosixQueue struct {
	name string
	fd   int

	closed    atomic.Bool
	closeOnce sync.Once
}

// OpenPosix opens the existing queue called name ("/epdtext_ipc"). The queue is
// never created here; the renderer owns it.
func OpenPosix(name string) (*PosixQueue, error) {
	fd, err := mqOpen(name, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0, nil)
	if err != nil {
		return nil, err
	}
	return &PosixQueue{name: name, fd: fd}, nil
}

// Name returns the queue name the handle was opened with.
func (q *PosixQueue) Name() string {
	return q.name
}

// Send enqueues message with priority 0. With the queue full the kernel answers
// EAGAIN immediately because the descriptor is non-blocking; timeout only bounds
// the absolute deadline handed to mq_timedsend.
func (q *PosixQueue) Send(ctx context.Context, message string, timeout time.Duration) error {
	if q.closed.Load() {
		return domain.ErrChannelClosed
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send aborted: %w", err)
	}

	deadline, ts := sendDeadline(timeout)
	buf := []byte(message)

	for {
		err := mqTimedSend(q.fd, buf, &ts)
		if err == nil {
			return nil
		}
		// Interrupted before anything was queued; the call is safe to re-issue.
		if errors.Is(err, unix.EINTR) && time.Now().Before(deadline) {
			continue
		}
		return translateSendErr(err)
	}
}

// sendDeadline returns now+timeout as the CLOCK_REALTIME timespec that
// mq_timedsend expects. It always reads the wall clock.
func sendDeadline(timeout time.Duration) (time.Time, unix.Timespec) {
	deadline := time.Now().Add(timeout)
	return deadline, unix.NsecToTimespec(deadline.UnixNano())
}

// Stats reads the queue's current depth with mq_getsetattr.
func (q *PosixQueue) Stats() (domain.ChannelStats, error) {
	if q.closed.Load() {
		return domain.ChannelStats{}, domain.ErrChannelClosed
	}
	var attr mqAttr
	_, _, errno := unix.Syscall(unix.SYS_MQ_GETSETATTR, uintptr(q.fd), 0, uintptr(unsafe.Pointer(&attr)))
	if errno != 0 {
		return domain.ChannelStats{}, translateSendErr(errno)
	}
	return domain.ChannelStats{Pending: attr.CurMsgs, Capacity: attr.MaxMsg}, nil
}

// Close releases the descriptor. Sends after Close fail with ErrChannelClosed.
func (q *PosixQueue) Close() error {
	var err error
	q.closeOnce.Do(func() {
		q.closed.Store(true)
		if cerr := unix.Close(q.fd); cerr != nil {
			err = fmt.Errorf("failed to close message queue %s: %w", q.name, cerr)
		}
	})
	return err
}

func translateSendErr(err error) error {
	switch {
	case errors.Is(err, unix.EAGAIN):
		return domain.ErrChannelFull
	case errors.Is(err, unix.ETIMEDOUT):
		return domain.ErrSendTimeout
	case errors.Is(err, unix.EBADF):
		return domain.ErrChannelClosed
	case errors.Is(err, unix.EMSGSIZE):
		return domain.ErrMessageTooLarge
	default:
		return fmt.Errorf("mq_timedsend: %w", err)
	}
}

// mqAttr mirrors struct mq_attr; every field is a C long.
type mqAttr struct {
	Flags   int
	MaxMsg  int
	MsgSize int
	CurMsgs int
	_       [4]int
}

// mqOpen issues the raw syscall. The kernel expects the name without the
// leading slash that the libc wrapper strips.
func mqOpen(name string, flags int, mode uint32, attr *mqAttr) (int, error) {
	kname := strings.TrimPrefix(name, "/")
	if kname == "" || strings.Contains(kname, "/") {
		return -1, fmt.Errorf("invalid message queue name %q", name)
	}
	p, err := unix.BytePtrFromString(kname)
	if err != nil {
		return -1, fmt.Errorf("invalid message queue name %q: %w", name, err)
	}

	fd, _, errno := unix.Syscall6(unix.SYS_MQ_OPEN,
		uintptr(unsafe.Pointer(p)), uintptr(flags), uintptr(mode), uintptr(unsafe.Pointer(attr)), 0, 0)
	if errno != 0 {
		switch errno {
		case unix.EACCES, unix.EPERM:
			return -1, fmt.Errorf("%w: %s", ErrPermissionDenied, name)
		case unix.ENOENT:
			return -1, fmt.Errorf("%w: %s", ErrQueueNotFound, name)
		default:
			return -1, fmt.Errorf("mq_open %s: %w", name, errno)
		}
	}
	return int(fd), nil
}

func mqTimedSend(fd int, msg []byte, deadline *unix.Timespec) error {
	var p unsafe.Pointer
	if len(msg) > 0 {
		p = unsafe.Pointer(&msg[0])
	}
	_, _, errno := unix.Syscall6(unix.SYS_MQ_TIMEDSEND,
		uintptr(fd), uintptr(p), uintptr(len(msg)), 0, uintptr(unsafe.Pointer(deadline)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}
