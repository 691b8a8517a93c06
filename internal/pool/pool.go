// Package pool implements the fixed-capacity native buffer pool backing
// frame submissions.
//
// All buffers are pre-allocated once at construction as an arena of
// equally sized slots, so the hot path (Acquire/Release) never
// allocates. Ownership is tracked with a checked-out bitmap addressed by
// slot index, which makes the "exactly one owner" invariant mechanically
// checkable: releasing a buffer that is not checked out is a caller
// contract violation and panics.
package pool

import (
	"fmt"
	"sync"

	"github.com/vtx-labs/framecast/internal/domain"
)

// Pool is a fixed set of reusable byte buffers. The pool never grows;
// bounded memory is a hard requirement for embedded operation.
type Pool struct {
	mu         sync.Mutex
	buffers    []*domain.Buffer
	checkedOut []bool
	free       []int // stack of free slot indices
}

// New creates a pool of capacity buffers, each bufferSize bytes.
// Panics if capacity or bufferSize is not positive; the facade validates
// configuration before construction.
func New(capacity, bufferSize int) *Pool {
	if capacity <= 0 || bufferSize <= 0 {
		panic("framecast: pool capacity and buffer size must be positive")
	}

	p := &Pool{
		buffers:    make([]*domain.Buffer, capacity),
		checkedOut: make([]bool, capacity),
		free:       make([]int, 0, capacity),
	}

	// One backing allocation for the whole arena keeps slots contiguous.
	arena := make([]byte, capacity*bufferSize)
	for i := 0; i < capacity; i++ {
		region := arena[i*bufferSize : (i+1)*bufferSize : (i+1)*bufferSize]
		p.buffers[i] = domain.NewBuffer(region, i)
		p.free = append(p.free, i)
	}
	return p
}

// Acquire checks out a free buffer. Non-blocking: returns
// domain.ErrPoolExhausted when every buffer is in use.
// The returned buffer's logical length is reset to zero.
func (p *Pool) Acquire() (*domain.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) == 0 {
		return nil, domain.ErrPoolExhausted
	}

	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.checkedOut[slot] = true

	b := p.buffers[slot]
	b.SetLen(0)
	return b, nil
}

// Release returns a checked-out buffer to the free list. Releasing a
// buffer that is not checked out, or that does not belong to this pool,
// is a programming error and panics.
func (p *Pool) Release(b *domain.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	slot := b.Slot()
	if slot < 0 || slot >= len(p.buffers) || p.buffers[slot] != b {
		panic(fmt.Sprintf("framecast: release of foreign buffer (slot %d)", slot))
	}
	if !p.checkedOut[slot] {
		panic(fmt.Sprintf("framecast: double release of buffer slot %d", slot))
	}

	p.checkedOut[slot] = false
	p.free = append(p.free, slot)
}

// Owns reports whether b belongs to this pool and is currently checked out.
func (p *Pool) Owns(b *domain.Buffer) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	slot := b.Slot()
	return slot >= 0 && slot < len(p.buffers) && p.buffers[slot] == b && p.checkedOut[slot]
}

// InUse returns the number of currently checked-out buffers.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buffers) - len(p.free)
}

// Capacity returns the fixed number of buffers in the pool.
func (p *Pool) Capacity() int {
	return len(p.buffers)
}

// BufferSize returns the capacity of each buffer.
func (p *Pool) BufferSize() int {
	return p.buffers[0].Cap()
}
