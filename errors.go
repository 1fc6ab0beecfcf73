package membuf

import "errors"

// Sentinel errors reported by PooledBuffer operations. Call sites wrap them
// with context; match with errors.Is.
var (
	// ErrReleased is returned by any operation on a buffer whose backing
	// array has already been returned to the pool.
	ErrReleased = errors.New("buffer has been released")

	// ErrOutOfRange is returned when a seek or truncate target violates the
	// documented bounds.
	ErrOutOfRange = errors.New("target position out of range")

	// ErrInvalidArgument is returned for a nil pool, nil sink or unknown
	// seek whence.
	ErrInvalidArgument = errors.New("invalid argument")
)
