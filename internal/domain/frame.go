package domain

import (
	"sync/atomic"
	"time"
)

// Frame is one submitted unit of encoded video data. It holds exclusive,
// temporary ownership of its Buffer from submission until a terminal
// status is reached, at which point ownership returns to the pool.
//
// State transitions are Queued -> Sending -> {Sent, Cancelled}, with
// Queued -> Cancelled for frames evicted before transmission. The
// transition into a terminal state is guarded by a compare-and-swap so
// that exactly one finisher wins even when eviction and transmission
// race.
type Frame struct {
	// Seq is the strictly increasing sequence number assigned at submission.
	Seq uint64

	// Buf is the pooled buffer holding the encoded payload.
	Buf *Buffer

	// SubmittedAt is the submission timestamp.
	SubmittedAt time.Time

	state      atomic.Int32
	superseded atomic.Bool
}

// NewFrame creates a frame in the Queued state.
func NewFrame(seq uint64, buf *Buffer) *Frame {
	f := &Frame{
		Seq:         seq,
		Buf:         buf,
		SubmittedAt: time.Now(),
	}
	f.state.Store(int32(FrameQueued))
	return f
}

// State returns the current lifecycle state.
func (f *Frame) State() FrameState {
	return FrameState(f.state.Load())
}

// BeginSending transitions Queued -> Sending. Returns false if the frame
// is no longer Queued (already evicted). Called only by the queue under
// its lock, on behalf of the single consumer.
func (f *Frame) BeginSending() bool {
	return f.state.CompareAndSwap(int32(FrameQueued), int32(FrameSending))
}

// Finish transitions the frame into the terminal state for cause.
// Returns true if this call won the transition; false means another
// finisher already terminated the frame and the caller must not reclaim
// the buffer or notify.
func (f *Frame) Finish(cause Status) bool {
	terminal := FrameCancelled
	if cause == StatusSent {
		terminal = FrameSent
	}
	for {
		cur := f.state.Load()
		if FrameState(cur).Terminal() {
			return false
		}
		if f.state.CompareAndSwap(cur, int32(terminal)) {
			return true
		}
	}
}

// MarkSuperseded flags the frame as displaced by a fresher submission.
// The engine observes the flag at fragment boundaries and stops issuing
// further fragments.
func (f *Frame) MarkSuperseded() {
	f.superseded.Store(true)
}

// Superseded reports whether the frame has been displaced.
func (f *Frame) Superseded() bool {
	return f.superseded.Load()
}
