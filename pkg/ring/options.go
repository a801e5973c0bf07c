package ring

import "go.uber.org/zap"

// DrainPath labels the path a value left the buffer through.
type DrainPath string

const (
	DrainPathNext     DrainPath = "next"
	DrainPathFill     DrainPath = "fill"
	DrainPathFastFill DrainPath = "fast_fill"
)

// Observer receives buffer activity. Calls happen synchronously on the
// goroutine driving the buffer.
type Observer interface {
	ObservePush(evicted bool)
	ObserveDrain(path DrainPath, moved int)
	ObserveOccupancy(length, capacity int)
}

// Option configures a Buffer.
type Option[T any] func(*options[T])

type options[T any] struct {
	observer Observer
	dropHook func(T)
	logger   *zap.Logger
}

// WithObserver reports pushes, drains and occupancy to observer.
func WithObserver[T any](observer Observer) Option[T] {
	return func(o *options[T]) {
		o.observer = observer
	}
}

// WithDropHook sets a function called with every value the buffer finalizes
// itself: values overwritten by Push and values still held at Release.
// Values handed out by Next, Fill or FastFill are not passed to the hook.
func WithDropHook[T any](hook func(T)) Option[T] {
	return func(o *options[T]) {
		o.dropHook = hook
	}
}

// WithLogger logs buffer lifecycle events at debug level.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

func applyOptions[T any](opts ...Option[T]) *options[T] {
	o := &options[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
