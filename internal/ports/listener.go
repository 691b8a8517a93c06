package ports

import "github.com/vtx-labs/framecast/internal/domain"

// StatusListener receives terminal frame status events.
//
// OnFrameStatus is invoked exactly once per submitted frame, from a
// dedicated notification goroutine the application must treat as
// arbitrary (never the submitting goroutine). The frame's buffer handle
// is informational only: by the time the callback runs, the buffer has
// already been returned to the pool and may have been reissued to a new
// acquisition. Listeners must not retain or read the buffer's memory
// past the callback's return.
type StatusListener interface {
	OnFrameStatus(cause domain.Status, frame *domain.Frame)
}

// StatusListenerFunc adapts a function to the StatusListener interface.
type StatusListenerFunc func(cause domain.Status, frame *domain.Frame)

// OnFrameStatus calls f(cause, frame).
func (f StatusListenerFunc) OnFrameStatus(cause domain.Status, frame *domain.Frame) {
	f(cause, frame)
}
