package ring

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// noCopy marks Buffer for go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Stats counts what happened to values over the life of a buffer.
type Stats struct {
	Pushed  uint64
	Evicted uint64
	Pulled  uint64
	Dropped uint64
}

// Buffer is a fixed-capacity ring buffer that overwrites its oldest value
// when full. It is not safe for concurrent use.
type Buffer[T any] struct {
	noCopy noCopy

	items []T
	// w is the next write slot, r the oldest occupied slot.
	w, r int
	size int
	// full disambiguates r == w.
	full     bool
	released bool

	opts     *options[T]
	observer Observer
	dropHook func(T)
	logger   *zap.Logger
	stats    Stats
}

// New allocates a buffer holding exactly capacity values.
//
// It panics if capacity is below one or if the storage size overflows int.
func New[T any](capacity int, opts ...Option[T]) *Buffer[T] {
	mustAllocatable[T](capacity)
	b := newBuffer(capacity, applyOptions(opts...))
	b.logger.Debug("ring buffer created", zap.Int("capacity", capacity))
	return b
}

func newBuffer[T any](capacity int, opts *options[T]) *Buffer[T] {
	b := &Buffer[T]{
		items:    make([]T, capacity),
		size:     capacity,
		opts:     opts,
		observer: opts.observer,
		dropHook: opts.dropHook,
		logger:   zap.NewNop(),
	}
	if opts.logger != nil {
		b.logger = opts.logger.With(zap.String("ring_id", uuid.NewString()))
	}
	return b
}

func mustAllocatable[T any](capacity int) {
	if capacity <= 0 {
		panic(fmt.Errorf("ring: new with capacity %d: %w", capacity, ErrInvalidCapacity))
	}
	var zero T
	if elem := unsafe.Sizeof(zero); elem > 0 && uintptr(capacity) > uintptr(math.MaxInt)/elem {
		panic(fmt.Errorf("ring: new with capacity %d of %d-byte values: %w", capacity, elem, ErrCapacityOverflow))
	}
}

// Len returns the number of occupied slots.
func (b *Buffer[T]) Len() int {
	switch {
	case b.full:
		return b.size
	case b.w >= b.r:
		return b.w - b.r
	default:
		return b.size - b.r + b.w
	}
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return b.size
}

// Full reports whether every slot is occupied.
func (b *Buffer[T]) Full() bool {
	return b.full
}

// Empty reports whether no slot is occupied.
func (b *Buffer[T]) Empty() bool {
	return b.Len() == 0
}

// Stats returns a snapshot of the buffer counters.
func (b *Buffer[T]) Stats() Stats {
	return b.stats
}

// Push stores value, finalizing the oldest value first when the buffer is
// full. It returns the number of free slots left, 0 once full.
func (b *Buffer[T]) Push(value T) int {
	b.mustLive("push")

	evicted := b.full
	if evicted {
		// r == w: the write slot holds the oldest value.
		b.drop(b.w)
		b.r = b.advance(b.r, 1)
		b.stats.Evicted++
	}
	b.items[b.w] = value
	b.w = b.advance(b.w, 1)
	b.stats.Pushed++

	remaining := 0
	if b.w == b.r {
		b.full = true
	} else {
		remaining = b.size - b.Len()
	}

	if b.observer != nil {
		b.observer.ObservePush(evicted)
		b.observer.ObserveOccupancy(b.Len(), b.size)
	}
	return remaining
}

// Release finalizes every value still held and drops the storage. Calling it
// again is a no-op. Push, Clone and CloneFunc panic on a released buffer;
// the drain paths report it as empty.
func (b *Buffer[T]) Release() {
	if b.released {
		return
	}
	held := b.Len()
	for _, s := range b.spans() {
		for i := s.start; i < s.end; i++ {
			b.drop(i)
		}
	}
	b.stats.Dropped += uint64(held)
	b.items = nil
	b.w, b.r, b.full = 0, 0, false
	b.released = true

	if b.observer != nil {
		b.observer.ObserveOccupancy(0, b.size)
	}
	b.logger.Debug("ring buffer released", zap.Int("dropped", held))
}

// drop finalizes the value in slot i and clears the slot.
func (b *Buffer[T]) drop(i int) {
	if b.dropHook != nil {
		b.dropHook(b.items[i])
	}
	var zero T
	b.items[i] = zero
}

func (b *Buffer[T]) advance(i, n int) int {
	return (i + n) % b.size
}

func (b *Buffer[T]) mustLive(op string) {
	if b.released {
		panic(fmt.Errorf("ring: %s: %w", op, ErrReleased))
	}
}
