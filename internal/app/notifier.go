package app

import (
	"sync"

	"github.com/vtx-labs/framecast/internal/domain"
	"github.com/vtx-labs/framecast/internal/ports"
)

// statusEvent is one terminal outcome awaiting delivery.
type statusEvent struct {
	cause domain.Status
	frame *domain.Frame
}

// Notifier delivers terminal status events to the registered listener on
// a dedicated goroutine, decoupling listener timing from the
// transmission engine. A slow or blocking listener can never stall frame
// admission or transmission (until the event buffer fills, which bounds
// memory rather than dropping events: exactly-once delivery is
// load-bearing).
type Notifier struct {
	mu       sync.RWMutex
	listener ports.StatusListener

	events chan statusEvent
	done   chan struct{}
	logger ports.Logger

	closeOnce sync.Once
}

// NewNotifier creates a notifier with the given event buffer capacity.
func NewNotifier(buffer int, logger ports.Logger) *Notifier {
	return &Notifier{
		events: make(chan statusEvent, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// SetListener registers or replaces the listener. A nil listener drops
// events after counting them.
func (n *Notifier) SetListener(l ports.StatusListener) {
	n.mu.Lock()
	n.listener = l
	n.mu.Unlock()
}

// Start spawns the delivery goroutine.
func (n *Notifier) Start() {
	go n.run()
}

// Post hands a terminal event to the delivery goroutine. The frame's
// buffer must already have been released to the pool (reclaim-then-
// notify ordering). Blocks only when the event buffer is full.
//
// Post must not be called after Close; the sender's shutdown sequence
// stops the engine and finishes every frame before closing the notifier.
func (n *Notifier) Post(cause domain.Status, frame *domain.Frame) {
	n.events <- statusEvent{cause: cause, frame: frame}
}

// Close stops intake and blocks until every event posted so far has been
// delivered. Idempotent.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.events)
	})
	<-n.done
}

func (n *Notifier) run() {
	defer close(n.done)

	for ev := range n.events {
		n.mu.RLock()
		l := n.listener
		n.mu.RUnlock()

		if l == nil {
			continue
		}
		l.OnFrameStatus(ev.cause, ev.frame)
	}
}
