package fxchain

import (
	"fmt"
	"math/bits"
	"sync/atomic"
)

// DefaultFIFOCapacity is the order channel capacity used by NewProcessor.
const DefaultFIFOCapacity = 32

// OrderFIFO is a fixed-capacity single-producer single-consumer ring of
// orders. Push is called from exactly one goroutine and Pull from exactly
// one other; neither blocks or allocates.
type OrderFIFO struct {
	buf  []Order
	mask uint64

	// head is the next slot to read, tail the next slot to write. Both only
	// grow; the slot index is the counter masked by the capacity.
	head atomic.Uint64
	tail atomic.Uint64
}

// NewOrderFIFO returns a FIFO whose capacity is capacity rounded up to a
// power of two.
func NewOrderFIFO(capacity int) (*OrderFIFO, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("fxchain: fifo capacity must be > 0: %d", capacity)
	}

	size := uint64(1) << bits.Len64(uint64(capacity-1))

	return &OrderFIFO{
		buf:  make([]Order, size),
		mask: size - 1,
	}, nil
}

// Push appends o. It returns false without touching queued entries when
// the ring is full.
func (f *OrderFIFO) Push(o Order) bool {
	tail := f.tail.Load()
	if tail-f.head.Load() == uint64(len(f.buf)) {
		return false
	}

	f.buf[tail&f.mask] = o
	f.tail.Store(tail + 1)

	return true
}

// Pull pops the oldest entry into dst. It returns false when empty.
func (f *OrderFIFO) Pull(dst *Order) bool {
	head := f.head.Load()
	if head == f.tail.Load() {
		return false
	}

	*dst = f.buf[head&f.mask]
	f.head.Store(head + 1)

	return true
}

// Len returns the number of queued entries. It is exact only when called
// from the producer or consumer while the other side is idle.
func (f *OrderFIFO) Len() int {
	return int(f.tail.Load() - f.head.Load())
}

// Cap returns the ring capacity.
func (f *OrderFIFO) Cap() int {
	return len(f.buf)
}
