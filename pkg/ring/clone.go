package ring

import "go.uber.org/zap"

// Clone returns an independent buffer with its own storage, the same cursor
// state and a copy of every occupied value. The source is left untouched and
// keeps ownership of its values. The drop hook and logger carry over; the
// observer does not, so the clone reports nothing unless opts attach one.
// Counters start at zero.
func (b *Buffer[T]) Clone(opts ...Option[T]) *Buffer[T] {
	return b.CloneFunc(nil, opts...)
}

// CloneFunc is Clone with each occupied value duplicated through fn, for
// values that need more than assignment to copy. A nil fn copies by
// assignment.
func (b *Buffer[T]) CloneFunc(fn func(T) T, opts ...Option[T]) *Buffer[T] {
	b.mustLive("clone")

	inherited := *b.opts
	inherited.observer = nil
	for _, opt := range opts {
		if opt != nil {
			opt(&inherited)
		}
	}

	c := newBuffer(b.size, &inherited)
	c.w, c.r, c.full = b.w, b.r, b.full
	for _, s := range b.spans() {
		if fn == nil {
			copy(c.items[s.start:s.end], b.items[s.start:s.end])
			continue
		}
		for i := s.start; i < s.end; i++ {
			c.items[i] = fn(b.items[i])
		}
	}
	if c.observer != nil {
		c.observer.ObserveOccupancy(c.Len(), c.size)
	}

	c.logger.Debug("ring buffer cloned", zap.Int("capacity", c.size), zap.Int("len", c.Len()))
	return c
}
