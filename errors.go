package quadtree

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when an insert location lies outside the root region.
	ErrOutOfBounds = errors.New("location out of bounds")

	// ErrDegenerateCollision is returned when two locations cannot be separated
	// into different quadrants within the maximum subdivision depth.
	ErrDegenerateCollision = errors.New("cannot separate colocated entities")

	// ErrInvalidRegion is returned by New for a root region that is empty or not finite.
	ErrInvalidRegion = errors.New("invalid region")
)

// CollisionError describes a failed attempt to split a leaf.
//
// It unwraps to ErrDegenerateCollision.
type CollisionError[TFloat float32 | float64] struct {
	Depth    int
	Existing Point[TFloat]
	Incoming Point[TFloat]
}

func (e *CollisionError[TFloat]) Error() string {
	return fmt.Sprintf("%v: (%v, %v) and (%v, %v) still share a quadrant at depth %d",
		ErrDegenerateCollision, e.Existing.X, e.Existing.Y, e.Incoming.X, e.Incoming.Y, e.Depth)
}

func (e *CollisionError[TFloat]) Unwrap() error { return ErrDegenerateCollision }
