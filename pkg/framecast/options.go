package framecast

import (
	"github.com/vtx-labs/framecast/internal/app"
	"github.com/vtx-labs/framecast/internal/domain"
	"github.com/vtx-labs/framecast/internal/ports"
	"github.com/vtx-labs/framecast/pkg/log"
)

// Re-exported types so applications only import this package.
type (
	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger

	// Frame is one submitted unit of encoded video data.
	Frame = domain.Frame

	// Buffer is a handle to one pooled memory slot.
	Buffer = domain.Buffer

	// Status is the terminal outcome of a frame.
	Status = domain.Status

	// Stats is a point-in-time copy of the sender counters.
	Stats = domain.StatsSnapshot

	// StatusListener receives terminal frame status events.
	StatusListener = ports.StatusListener

	// StatusListenerFunc adapts a function to StatusListener.
	StatusListenerFunc = ports.StatusListenerFunc

	// Transport is the non-blocking send capability the sender consumes.
	Transport = ports.Transport

	// TransportFunc adapts a function to Transport.
	TransportFunc = ports.TransportFunc

	// SendResult classifies a TrySend outcome.
	SendResult = ports.SendResult

	// State is the sender lifecycle state.
	State = app.State
)

// Terminal statuses.
const (
	StatusSent      = domain.StatusSent
	StatusCancelled = domain.StatusCancelled
)

// Transport outcomes.
const (
	SendAccepted = ports.SendAccepted
	SendBusy     = ports.SendBusy
	SendFatal    = ports.SendFatal
)

// Lifecycle states.
const (
	StateIdle    = app.StateIdle
	StateRunning = app.StateRunning
	StateClosing = app.StateClosing
	StateClosed  = app.StateClosed
)

// Re-exported sentinel errors, checkable with errors.Is.
var (
	ErrPoolExhausted  = domain.ErrPoolExhausted
	ErrFrameTooLarge  = domain.ErrFrameTooLarge
	ErrClosed         = domain.ErrClosed
	ErrNotRunning     = domain.ErrNotRunning
	ErrAlreadyRunning = domain.ErrAlreadyRunning
	ErrInvalidConfig  = domain.ErrInvalidConfig
)

// StateHandler observes sender lifecycle transitions.
type StateHandler = app.StateHandler

// Option configures optional behavior of a Sender.
type Option func(*options)

// options holds the optional configuration for a Sender instance.
type options struct {
	logger       ports.Logger
	listener     ports.StatusListener
	stateHandler app.StateHandler
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithListener registers the status listener at construction time,
// before any frame can reach a terminal state. Equivalent to calling
// SetListener before Start.
func WithListener(listener StatusListener) Option {
	return func(o *options) {
		o.listener = listener
	}
}

// WithStateHandler sets a handler for lifecycle state transitions.
// The handler is called outside all sender locks.
func WithStateHandler(handler StateHandler) Option {
	return func(o *options) {
		o.stateHandler = handler
	}
}
