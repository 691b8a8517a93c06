package pool

import (
	"sync"
	"testing"

	"github.com/vtx-labs/framecast/internal/domain"
)

func TestNew_PreAllocates(t *testing.T) {
	p := New(4, 1024)

	if p.Capacity() != 4 {
		t.Errorf("Capacity() = %d, want 4", p.Capacity())
	}
	if p.BufferSize() != 1024 {
		t.Errorf("BufferSize() = %d, want 1024", p.BufferSize())
	}
	if p.InUse() != 0 {
		t.Errorf("InUse() = %d, want 0", p.InUse())
	}
}

func TestAcquire_ExhaustsAtCapacity(t *testing.T) {
	p := New(2, 64)

	a, err := p.Acquire()
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	b, err := p.Acquire()
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if a == b {
		t.Fatal("Acquire() returned the same buffer twice")
	}

	if _, err := p.Acquire(); err != domain.ErrPoolExhausted {
		t.Errorf("third Acquire() error = %v, want ErrPoolExhausted", err)
	}

	p.Release(a)
	if _, err := p.Acquire(); err != nil {
		t.Errorf("Acquire() after Release() error = %v", err)
	}
}

func TestAcquire_ResetsLength(t *testing.T) {
	p := New(1, 64)

	b, _ := p.Acquire()
	b.SetLen(40)
	p.Release(b)

	b2, _ := p.Acquire()
	if b2.Len() != 0 {
		t.Errorf("reacquired buffer Len() = %d, want 0", b2.Len())
	}
}

func TestRelease_DoubleReleasePanics(t *testing.T) {
	p := New(1, 64)
	b, _ := p.Acquire()
	p.Release(b)

	defer func() {
		if recover() == nil {
			t.Error("double Release() did not panic")
		}
	}()
	p.Release(b)
}

func TestRelease_ForeignBufferPanics(t *testing.T) {
	p := New(1, 64)
	other := New(1, 64)
	b, _ := other.Acquire()

	defer func() {
		if recover() == nil {
			t.Error("Release() of foreign buffer did not panic")
		}
	}()
	p.Release(b)
}

func TestOwns(t *testing.T) {
	p := New(2, 64)
	b, _ := p.Acquire()

	if !p.Owns(b) {
		t.Error("Owns() = false for checked-out buffer")
	}

	p.Release(b)
	if p.Owns(b) {
		t.Error("Owns() = true for released buffer")
	}
}

func TestPool_CapacityInvariantUnderConcurrency(t *testing.T) {
	const capacity = 8
	p := New(capacity, 128)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				b, err := p.Acquire()
				if err != nil {
					continue
				}
				if n := p.InUse(); n > capacity {
					t.Errorf("InUse() = %d exceeds capacity %d", n, capacity)
				}
				p.Release(b)
			}
		}()
	}
	wg.Wait()

	if p.InUse() != 0 {
		t.Errorf("InUse() = %d after all releases, want 0", p.InUse())
	}
}
