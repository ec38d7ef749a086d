package quadtree

import "math"

// Point is a 2D location.
type Point[TFloat float32 | float64] struct {
	X TFloat
	Y TFloat
}

// Quadrant identifies one of the four children of a divided node.
// The order is also the order in which children are stored and visited.
type Quadrant int

const (
	NW Quadrant = iota
	NE
	SW
	SE
)

func (q Quadrant) String() string {
	switch q {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	case SE:
		return "SE"
	}
	return "Quadrant(?)"
}

// Rect is an axis-aligned region described by its center and half extents.
// Y grows downwards, so Top < Bottom.
type Rect[TFloat float32 | float64] struct {
	Center     Point[TFloat]
	HalfWidth  TFloat
	HalfHeight TFloat
}

func (r Rect[TFloat]) Left() TFloat { return r.Center.X - r.HalfWidth }
func (r Rect[TFloat]) Right() TFloat { return r.Center.X + r.HalfWidth }
func (r Rect[TFloat]) Top() TFloat { return r.Center.Y - r.HalfHeight }
func (r Rect[TFloat]) Bottom() TFloat { return r.Center.Y + r.HalfHeight }

// Contains is a half-open test. Points on the left or top edge are inside,
// points on the right or bottom edge belong to the neighbour.
func (r Rect[TFloat]) Contains(p Point[TFloat]) bool {
	return r.Left() <= p.X && p.X < r.Right() &&
		r.Top() <= p.Y && p.Y < r.Bottom()
}

// Quadrant classifies p relative to the center of r.
// Points on the center lines are pushed east and south.
func (r Rect[TFloat]) Quadrant(p Point[TFloat]) Quadrant {
	east := p.X >= r.Center.X
	south := p.Y >= r.Center.Y
	switch {
	case !east && !south:
		return NW
	case east && !south:
		return NE
	case !east && south:
		return SW
	}
	return SE
}

// Child returns the region of quadrant q.
func (r Rect[TFloat]) Child(q Quadrant) Rect[TFloat] {
	chw := r.HalfWidth / 2
	chh := r.HalfHeight / 2
	c := r.Center
	switch q {
	case NW:
		c = Point[TFloat]{c.X - chw, c.Y - chh}
	case NE:
		c = Point[TFloat]{c.X + chw, c.Y - chh}
	case SW:
		c = Point[TFloat]{c.X - chw, c.Y + chh}
	default:
		c = Point[TFloat]{c.X + chw, c.Y + chh}
	}
	return Rect[TFloat]{Center: c, HalfWidth: chw, HalfHeight: chh}
}

// Valid reports whether r has a finite center and positive, finite extents.
func (r Rect[TFloat]) Valid() bool {
	return isFinite(r.Center.X) && isFinite(r.Center.Y) &&
		isFinite(r.HalfWidth) && isFinite(r.HalfHeight) &&
		r.HalfWidth > 0 && r.HalfHeight > 0
}

// SquaredDistance is the squared Euclidean distance between a and b.
func SquaredDistance[TFloat float32 | float64](a, b Point[TFloat]) TFloat {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func isFinite[TFloat float32 | float64](v TFloat) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
