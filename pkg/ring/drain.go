package ring

import "iter"

// span is the half-open slot range [start, end).
type span struct {
	start, end int
}

func (s span) len() int {
	return s.end - s.start
}

// spans returns the occupied region, oldest first, as at most two ranges.
// Unused entries are empty. Every path that touches live slots goes
// through here.
func (b *Buffer[T]) spans() [2]span {
	switch {
	case b.r < b.w:
		return [2]span{{b.r, b.w}, {}}
	case b.r == b.w && !b.full:
		return [2]span{}
	default:
		// Wrapped, or r == w with every slot occupied.
		return [2]span{{b.r, b.size}, {0, b.w}}
	}
}

// Next removes and returns the oldest value. The second result is false when
// the buffer is empty.
func (b *Buffer[T]) Next() (T, bool) {
	value, ok := b.pull()
	if ok {
		b.observeDrain(DrainPathNext, 1)
	}
	return value, ok
}

// Remaining returns the exact number of values Next would still yield.
func (b *Buffer[T]) Remaining() int {
	return b.Len()
}

// All returns a sequence that consumes the buffer through Next. Values
// yielded are gone from the buffer, including the one handed to a loop body
// that breaks.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, ok := b.Next()
			if !ok || !yield(value) {
				return
			}
		}
	}
}

// Fill moves values oldest first into the spare capacity of *sink, one at a
// time, until the sink has no room or the buffer is empty. The sink is never
// grown. It returns the number of values moved.
func (b *Buffer[T]) Fill(sink *[]T) int {
	if sink == nil {
		return 0
	}
	dst := *sink
	moved := 0
	for len(dst) < cap(dst) {
		value, ok := b.pull()
		if !ok {
			break
		}
		dst = append(dst, value)
		moved++
	}
	*sink = dst
	b.observeDrain(DrainPathFill, moved)
	return moved
}

// FastFill has the contract of Fill but copies each occupied range into the
// sink in one step.
func (b *Buffer[T]) FastFill(sink *[]T) int {
	if sink == nil || b.Len() == 0 {
		return 0
	}
	room := cap(*sink) - len(*sink)
	if room == 0 {
		return 0
	}
	ranges := b.spans()
	moved := b.fillSpan(ranges[0], sink)
	if moved < room {
		moved += b.fillSpan(ranges[1], sink)
	}
	b.observeDrain(DrainPathFastFill, moved)
	return moved
}

// fillSpan copies the head of s that fits into the sink's spare capacity and
// releases those slots.
func (b *Buffer[T]) fillSpan(s span, sink *[]T) int {
	dst := *sink
	offset := len(dst)
	n := min(s.len(), cap(dst)-offset)
	if n <= 0 {
		return 0
	}
	src := b.items[s.start : s.start+n]
	dst = dst[:offset+n]
	copy(dst[offset:], src)
	clear(src)
	*sink = dst

	b.r = b.advance(b.r, n)
	b.full = false
	b.stats.Pulled += uint64(n)
	return n
}

func (b *Buffer[T]) pull() (T, bool) {
	var zero T
	if b.Len() == 0 {
		return zero, false
	}
	value := b.items[b.r]
	b.items[b.r] = zero
	b.r = b.advance(b.r, 1)
	b.full = false
	b.stats.Pulled++
	return value, true
}

func (b *Buffer[T]) observeDrain(path DrainPath, moved int) {
	if b.observer == nil || moved == 0 {
		return
	}
	b.observer.ObserveDrain(path, moved)
	b.observer.ObserveOccupancy(b.Len(), b.size)
}
