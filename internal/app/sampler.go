package app

import (
	"fmt"

	"go.uber.org/zap"

	"circbuf/internal/domain"
	"circbuf/internal/infra/config"
	"circbuf/internal/infra/telemetry"
	"circbuf/pkg/ring"
)

// Sampler pairs a ring buffer with a reusable batch so a hot path can record
// values and a periodic consumer can flush them without allocating.
//
// A Sampler is not safe for concurrent use. Producers and the flushing
// consumer must share one lock around Record and Flush.
type Sampler[T any] struct {
	buf    *ring.Buffer[T]
	batch  []T
	fill   func(*[]T) int
	name   string
	logger *zap.Logger
}

// NewSampler builds the buffer described by cfg and a batch of
// cfg.Drain.Batch slots.
func NewSampler[T any](cfg domain.BufferConfig, deps Deps, opts ...ring.Option[T]) (*Sampler[T], error) {
	cfg = config.Normalize(cfg)
	buf, err := NewBuffer(cfg, deps, opts...)
	if err != nil {
		return nil, err
	}
	s := &Sampler[T]{
		buf:    buf,
		batch:  make([]T, 0, cfg.Drain.Batch),
		name:   cfg.Name,
		logger: deps.logger().Named("sampler").With(telemetry.BufferField(cfg.Name)),
	}
	if cfg.Drain.Path == domain.DrainPathReference {
		s.fill = buf.Fill
	} else {
		s.fill = buf.FastFill
	}
	return s, nil
}

// Record pushes value and returns the free slots left.
func (s *Sampler[T]) Record(value T) int {
	return s.buf.Push(value)
}

// Len returns the number of values waiting to be flushed.
func (s *Sampler[T]) Len() int {
	return s.buf.Len()
}

// Buffer exposes the underlying ring buffer.
func (s *Sampler[T]) Buffer() *ring.Buffer[T] {
	return s.buf
}

// Flush drains the buffer batch by batch, oldest first, handing each batch
// to fn. The slice passed to fn is reused by the next batch and must not be
// retained. Flush stops at the first error from fn; that batch counts as
// consumed. It returns the number of values delivered.
func (s *Sampler[T]) Flush(fn func(batch []T) error) (int, error) {
	delivered := 0
	batches := 0
	for {
		s.batch = s.batch[:0]
		n := s.fill(&s.batch)
		if n == 0 {
			break
		}
		batches++
		if err := fn(s.batch); err != nil {
			clear(s.batch)
			s.logger.Warn("flush stopped",
				telemetry.EventField(telemetry.EventSamplerFlushFailed),
				telemetry.CountField(delivered),
				zap.Error(err),
			)
			return delivered, domain.E(domain.CodeFailedPrecond, "flush "+s.name, "", fmt.Errorf("%w: %w", domain.ErrSinkFailed, err))
		}
		delivered += n
		clear(s.batch)
	}
	s.batch = s.batch[:0]

	if delivered > 0 {
		s.logger.Debug("flushed",
			telemetry.EventField(telemetry.EventSamplerFlush),
			telemetry.CountField(delivered),
			zap.Int("batches", batches),
		)
	}
	return delivered, nil
}

// Close releases the buffer, finalizing anything not flushed.
func (s *Sampler[T]) Close() {
	pending := s.buf.Len()
	s.buf.Release()
	s.logger.Debug("sampler closed",
		telemetry.EventField(telemetry.EventSamplerClosed),
		telemetry.CountField(pending),
	)
}
