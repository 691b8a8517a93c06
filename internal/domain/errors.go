package domain

import "errors"

// Domain errors represent error conditions in the framecast domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrPoolExhausted is returned by Submit when no buffer is free and no
	// queued frame can be evicted to fund the new submission.
	ErrPoolExhausted = errors.New("framecast: buffer pool exhausted")

	// ErrFrameTooLarge is returned when a payload exceeds the buffer capacity.
	ErrFrameTooLarge = errors.New("framecast: frame exceeds buffer capacity")

	// ErrClosed is returned by Submit after Close() has been called.
	ErrClosed = errors.New("framecast: sender closed")

	// ErrAlreadyRunning is returned when Start() is called on a running sender.
	ErrAlreadyRunning = errors.New("framecast: already running")

	// ErrNotRunning is returned when an operation requires a started sender.
	ErrNotRunning = errors.New("framecast: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("framecast: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("framecast: invalid configuration")
)
