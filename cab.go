package quadtree

// Cab is a vehicle tracked by a CabIndex.
type Cab struct {
	Name string
}

func (c *Cab) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}

// Point64 is a float64 location, as used by CabIndex.
type Point64 = Point[float64]

// CabIndex is a quadtree of cabs with 64-bit float coordinates.
type CabIndex = Quadtree[float64, *Cab]

// CabNeighbor is a single CabIndex search result.
type CabNeighbor = Neighbor[float64, *Cab]

// NewCabIndex creates an empty CabIndex over the rectangle centered on center.
func NewCabIndex(center Point64, halfWidth, halfHeight float64, optFns ...Option) (*CabIndex, error) {
	return New[float64, *Cab](Rect[float64]{
		Center:     center,
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
	}, optFns...)
}
