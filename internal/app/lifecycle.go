package app

import (
	"sync"

	"github.com/vtx-labs/framecast/internal/domain"
	"github.com/vtx-labs/framecast/internal/ports"
)

// State represents the lifecycle state of a sender.
type State int

const (
	// StateIdle is the initial state; the sender accepts no frames yet.
	StateIdle State = iota

	// StateRunning is the operating state; frames are accepted and sent.
	StateRunning

	// StateClosing is the scoped-shutdown state; new submissions are
	// rejected while in-flight work winds down.
	StateClosing

	// StateClosed is the terminal state; the sender cannot be restarted.
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// StateHandler observes lifecycle transitions. Invoked outside all
// sender locks.
type StateHandler interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle manages the state machine for a sender instance.
type Lifecycle struct {
	mu      sync.RWMutex
	state   State
	logger  ports.Logger
	handler StateHandler
}

// NewLifecycle creates a lifecycle manager in StateIdle.
func NewLifecycle(logger ports.Logger, handler StateHandler) *Lifecycle {
	return &Lifecycle{
		state:   StateIdle,
		logger:  logger,
		handler: handler,
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to transition to a new state.
// Returns an error if the transition is not valid.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	valid := false
	switch oldState {
	case StateIdle:
		valid = newState == StateRunning || newState == StateClosed
	case StateRunning:
		valid = newState == StateClosing
	case StateClosing:
		valid = newState == StateClosed
	case StateClosed:
		valid = false
	}
	if !valid {
		l.mu.Unlock()
		if oldState == StateClosing || oldState == StateClosed {
			return domain.ErrClosed
		}
		if newState == StateRunning {
			return domain.ErrAlreadyRunning
		}
		return domain.ErrNotRunning
	}

	l.state = newState
	l.mu.Unlock()

	// Handler and log run outside the lock.
	if l.handler != nil {
		l.handler.OnStateChange(oldState, newState, reason)
	}
	l.logger.Info("state transition",
		ports.String("from", oldState.String()),
		ports.String("to", newState.String()),
		ports.String("reason", reason),
	)
	return nil
}

// Accepting reports whether new submissions are admitted.
func (l *Lifecycle) Accepting() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateRunning
}
