package domain

// Status is the terminal outcome of a submitted frame.
// Every submitted frame receives exactly one Status through the listener.
type Status int

const (
	// StatusSent means every fragment of the frame was accepted by the
	// transport. Acceptance means queued for egress, not acknowledged by
	// the receiver; the link is loss-tolerant by design.
	StatusSent Status = iota

	// StatusCancelled means the frame was evicted by a fresher submission,
	// aborted by sender shutdown, or rejected by the transport. Fragments
	// already written may still have reached the wire; cancellation does
	// not ensure the frame was not received.
	StatusCancelled
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSent:
		return "Sent"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// FrameState is the lifecycle state of a frame.
type FrameState int32

const (
	FrameQueued FrameState = iota
	FrameSending
	FrameSent
	FrameCancelled
)

// Terminal reports whether the state is an end state.
func (s FrameState) Terminal() bool {
	return s == FrameSent || s == FrameCancelled
}

// String returns a human-readable representation of the state.
func (s FrameState) String() string {
	switch s {
	case FrameQueued:
		return "Queued"
	case FrameSending:
		return "Sending"
	case FrameSent:
		return "Sent"
	case FrameCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
