package ring

import "errors"

var (
	// ErrInvalidCapacity is raised by New for a capacity below one.
	ErrInvalidCapacity = errors.New("capacity must be positive")
	// ErrCapacityOverflow is raised by New when the storage size overflows int.
	ErrCapacityOverflow = errors.New("storage size overflows")
	// ErrReleased is raised when a released buffer is mutated or cloned.
	ErrReleased = errors.New("buffer released")
)
