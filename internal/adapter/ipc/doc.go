// Package ipc implements the send side of the message channel the epdtext
// renderer consumes.
//
// Two backends satisfy domain.Channel:
//
//   - PosixQueue writes to an existing POSIX message queue (linux only). The queue is
//     opened once, write-only and non-blocking, and each Send is a single
//     mq_timedsend call.
//   - MemoryQueue is an in-process bounded queue with the same error contract, used
//     for local development and tests.
//
// Neither backend retries a failed send; callers get one outcome per call.
package ipc
