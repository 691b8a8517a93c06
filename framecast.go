// Package framecast provides an asynchronous, buffer-pooled video frame
// sender for constrained lossy links.
//
// Example usage:
//
//	cfg := framecast.DefaultConfig()
//	sender, err := framecast.New(transport, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sender.SetListener(listener)
//	if err := sender.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer sender.Close()
//
// This root package re-exports the public API from pkg/framecast for
// convenient import; sub-packages (pkg/framecast, pkg/log) can also be
// imported directly for selective use.
package framecast

import (
	fc "github.com/vtx-labs/framecast/pkg/framecast"
)

// Core types re-exported from pkg/framecast.
type (
	// Sender is the asynchronous frame sender.
	Sender = fc.Sender

	// Config holds the configuration for a Sender.
	Config = fc.Config

	// Option configures optional behavior of a Sender.
	Option = fc.Option

	// Frame is one submitted unit of encoded video data.
	Frame = fc.Frame

	// Buffer is a handle to one pooled memory slot.
	Buffer = fc.Buffer

	// Status is the terminal outcome of a frame.
	Status = fc.Status

	// Stats is a point-in-time copy of the sender counters.
	Stats = fc.Stats

	// StatusListener receives terminal frame status events.
	StatusListener = fc.StatusListener

	// StatusListenerFunc adapts a function to StatusListener.
	StatusListenerFunc = fc.StatusListenerFunc

	// Transport is the non-blocking send capability the sender consumes.
	Transport = fc.Transport

	// TransportFunc adapts a function to Transport.
	TransportFunc = fc.TransportFunc

	// SendResult classifies a TrySend outcome.
	SendResult = fc.SendResult
)

// Terminal statuses.
const (
	StatusSent      = fc.StatusSent
	StatusCancelled = fc.StatusCancelled
)

// Transport outcomes.
const (
	SendAccepted = fc.SendAccepted
	SendBusy     = fc.SendBusy
	SendFatal    = fc.SendFatal
)

// Sentinel errors, checkable with errors.Is.
var (
	ErrPoolExhausted = fc.ErrPoolExhausted
	ErrFrameTooLarge = fc.ErrFrameTooLarge
	ErrClosed        = fc.ErrClosed
	ErrInvalidConfig = fc.ErrInvalidConfig
)

// New creates a Sender that transmits through the given transport.
func New(transport Transport, cfg Config, opts ...Option) (*Sender, error) {
	return fc.New(transport, cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return fc.DefaultConfig()
}

// WithLogger sets a custom logger for structured logging.
func WithLogger(logger fc.Logger) Option {
	return fc.WithLogger(logger)
}

// WithListener registers the status listener at construction time.
func WithListener(listener StatusListener) Option {
	return fc.WithListener(listener)
}
