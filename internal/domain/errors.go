package domain

import "errors"

var (
	ErrInvalidScreenName = errors.New("invalid screen name")
	ErrInvalidButton     = errors.New("button index out of range")
	ErrUnknownAction     = errors.New("unknown action")

	ErrChannelFull     = errors.New("message channel is full")
	ErrChannelClosed   = errors.New("message channel is closed")
	ErrSendTimeout     = errors.New("message channel send timed out")
	ErrMessageTooLarge = errors.New("message exceeds channel message size")
)
