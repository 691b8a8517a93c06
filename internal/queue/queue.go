// Package queue implements the bounded ordered collection of frames
// awaiting transmission.
//
// The queue is multi-producer, single-consumer: any goroutine may
// Submit, only the transmission engine calls DequeueForSend. Depth is
// bounded structurally because every queued frame owns a pooled buffer
// and the pool is fixed-capacity; the queue itself never blocks.
//
// Under backpressure the freshest frame wins: when the pool is
// exhausted, the facade evicts the oldest still-queued frame via
// EvictOldestQueued and funds the new submission with its buffer. A
// frame that has left the queue for sending is never evicted.
package queue

import (
	"sync"

	"github.com/vtx-labs/framecast/internal/domain"
)

// Queue is a bounded FIFO of pending frames.
type Queue struct {
	mu     sync.Mutex
	frames []*domain.Frame
	ready  chan struct{}
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
	}
}

// Submit appends a frame and wakes the consumer. The frame must be in
// the Queued state.
func (q *Queue) Submit(f *domain.Frame) {
	q.mu.Lock()
	q.frames = append(q.frames, f)
	q.mu.Unlock()

	q.signal()
}

// DequeueForSend removes the head frame and transitions it
// Queued -> Sending. Returns nil when the queue is empty. Single
// consumer: only the transmission engine calls this.
func (q *Queue) DequeueForSend() *domain.Frame {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.frames) > 0 {
		f := q.frames[0]
		q.frames = q.frames[1:]
		if f.BeginSending() {
			return f
		}
		// Lost the race to a finisher; skip.
	}
	return nil
}

// EvictOldestQueued removes and returns the oldest frame still awaiting
// transmission, marking it superseded. Returns nil when the queue is
// empty. The caller finishes the frame (reclaim, notify) outside the
// queue lock.
func (q *Queue) EvictOldestQueued() *domain.Frame {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.frames) == 0 {
		return nil
	}
	f := q.frames[0]
	q.frames = q.frames[1:]
	f.MarkSuperseded()
	return f
}

// DrainAll removes and returns every pending frame. Used by shutdown to
// cancel queued frames in one sweep.
func (q *Queue) DrainAll() []*domain.Frame {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.frames
	q.frames = nil
	return drained
}

// Len returns the number of pending frames.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// Ready returns a channel that receives a signal when frames may be
// available. The consumer must drain with DequeueForSend until nil.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
