package ipc

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied opening message queue")
	ErrQueueNotFound    = errors.New("message queue does not exist")
	ErrUnsupported      = errors.New("POSIX message queues are not supported on this platform")
)
