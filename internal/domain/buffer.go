package domain

// Buffer is a handle to one pre-allocated slot of a buffer pool: a
// contiguous memory region with fixed capacity and a mutable logical
// length. A buffer has exactly one owner at a time (producer, pool free
// list, or in-flight frame) and is never aliased across owners.
type Buffer struct {
	data   []byte
	length int
	slot   int
}

// NewBuffer creates a buffer over a pre-allocated region.
// Called by the pool at construction; producers never create buffers.
func NewBuffer(data []byte, slot int) *Buffer {
	return &Buffer{data: data, slot: slot}
}

// Bytes returns the full backing region, capacity bytes long.
// Producers write encoded frame data here before SetLen.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Payload returns the logical content, the first Len() bytes.
func (b *Buffer) Payload() []byte {
	return b.data[:b.length]
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Len returns the logical length of the buffer content.
func (b *Buffer) Len() int {
	return b.length
}

// SetLen sets the logical length. Panics if n exceeds the capacity or
// is negative; that is a producer contract violation, not a runtime
// condition.
func (b *Buffer) SetLen(n int) {
	if n < 0 || n > len(b.data) {
		panic("framecast: buffer length out of range")
	}
	b.length = n
}

// Slot returns the pool slot index this buffer occupies.
func (b *Buffer) Slot() int {
	return b.slot
}
