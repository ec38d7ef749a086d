// Package quadtree is a point-region quadtree for approximate k-nearest-neighbour
// lookups of moving entities, such as cabs.
//
// Every leaf holds at most one entity. When a second entity lands in an
// occupied leaf, the leaf is split until the two are in different quadrants.
// FindNearest starts at the query point's leaf and widens the search one
// ancestor at a time, so it is fast but not exact.
//
// A Quadtree is not safe for concurrent use. See SyncQuadtree.
package quadtree

import (
	"cmp"
	"fmt"
	"slices"
)

// NodeID identifies a node within one Quadtree. The root is always 0.
type NodeID int

type nodeState uint8

const (
	emptyLeaf nodeState = iota
	filledLeaf
	divided
)

type node[TFloat float32 | float64, T any] struct {
	region     Rect[TFloat]
	parent     NodeID // -1 for the root
	firstChild NodeID // 0 if not divided. Children are contiguous, in Quadrant order.
	depth      int
	state      nodeState
	item       T
	loc        Point[TFloat]
}

func (n *node[TFloat, T]) child(q Quadrant) NodeID {
	return n.firstChild + NodeID(q)
}

// Neighbor is a single FindNearest result.
type Neighbor[TFloat float32 | float64, T any] struct {
	Item     T
	Location Point[TFloat]
	Dist2    TFloat // Squared distance to the query point
}

// Leaf describes an occupied leaf, as reported by Leaves.
type Leaf[TFloat float32 | float64, T any] struct {
	ID       NodeID
	Region   Rect[TFloat]
	Depth    int
	Item     T
	Location Point[TFloat]
}

// Quadtree indexes items of type T by location.
type Quadtree[TFloat float32 | float64, T any] struct {
	nodes    []node[TFloat, T]
	numItems int
	opts     options
}

// New creates an empty tree covering region.
func New[TFloat float32 | float64, T any](region Rect[TFloat], optFns ...Option) (*Quadtree[TFloat, T], error) {
	if !region.Valid() {
		return nil, fmt.Errorf("%w: center (%v, %v), half extents %v x %v",
			ErrInvalidRegion, region.Center.X, region.Center.Y, region.HalfWidth, region.HalfHeight)
	}
	q := &Quadtree[TFloat, T]{
		opts: applyOptions(optFns),
	}
	q.nodes = append(q.nodes, node[TFloat, T]{
		region: region,
		parent: -1,
	})
	return q, nil
}

// Len returns the number of items stored.
func (q *Quadtree[TFloat, T]) Len() int {
	return q.numItems
}

// NodeCount returns the number of nodes, including empty leaves.
func (q *Quadtree[TFloat, T]) NodeCount() int {
	return len(q.nodes)
}

// Bounds returns the root region.
func (q *Quadtree[TFloat, T]) Bounds() Rect[TFloat] {
	return q.nodes[0].region
}

// Insert adds item at loc.
// It returns an error wrapping ErrOutOfBounds if loc is outside the root region,
// and a *CollisionError if loc cannot be separated from an existing item
// within the maximum depth. In both cases the tree is left unchanged.
func (q *Quadtree[TFloat, T]) Insert(item T, loc Point[TFloat]) error {
	if !q.nodes[0].region.Contains(loc) {
		q.opts.logger.Warn("insert out of bounds", "x", loc.X, "y", loc.Y, "node", 0)
		return fmt.Errorf("%w: (%v, %v)", ErrOutOfBounds, loc.X, loc.Y)
	}

	id := NodeID(0)
	for {
		n := &q.nodes[id]
		switch n.state {
		case emptyLeaf:
			q.store(id, item, loc)
			return nil
		case divided:
			id = n.child(n.region.Quadrant(loc))
		default:
			return q.split(id, item, loc)
		}
	}
}

func (q *Quadtree[TFloat, T]) store(id NodeID, item T, loc Point[TFloat]) {
	n := &q.nodes[id]
	n.item = item
	n.loc = loc
	n.state = filledLeaf
	q.numItems++
	q.opts.logger.Debug("inserted", "x", loc.X, "y", loc.Y, "node", int(id), "depth", n.depth)
}

// split resolves a collision at the filled leaf id. The leaf becomes divided,
// and so does every descendant on the path where both locations still share a quadrant.
func (q *Quadtree[TFloat, T]) split(id NodeID, item T, loc Point[TFloat]) error {
	existing := q.nodes[id]

	// Find the separating depth before touching anything, so a failure leaves no trace.
	region := existing.region
	depth := existing.depth
	for {
		if depth >= q.opts.maxDepth {
			q.opts.logger.Warn("cannot separate colocated entities",
				"x", loc.X, "y", loc.Y, "node", int(id), "depth", depth)
			return &CollisionError[TFloat]{Depth: depth, Existing: existing.loc, Incoming: loc}
		}
		qa := region.Quadrant(existing.loc)
		if qa != region.Quadrant(loc) {
			break
		}
		region = region.Child(qa)
		depth++
	}

	var zero T
	q.nodes[id].item = zero
	q.numItems--

	cur := id
	for {
		q.subdivide(cur)
		n := &q.nodes[cur]
		qa := n.region.Quadrant(existing.loc)
		qb := n.region.Quadrant(loc)
		if qa == qb {
			cur = n.child(qa)
			continue
		}
		a, b := n.child(qa), n.child(qb)
		q.store(a, existing.item, existing.loc)
		q.store(b, item, loc)
		return nil
	}
}

func (q *Quadtree[TFloat, T]) subdivide(id NodeID) {
	first := NodeID(len(q.nodes))
	parent := q.nodes[id]
	for c := NW; c <= SE; c++ {
		q.nodes = append(q.nodes, node[TFloat, T]{
			region: parent.region.Child(c),
			parent: id,
			depth:  parent.depth + 1,
		})
	}
	// q.nodes may have been reallocated
	n := &q.nodes[id]
	n.firstChild = first
	n.state = divided
}

// FindNearest returns up to k items near p, closest first, climbing at most
// the configured number of ancestor levels (DefaultMaxLevelsUp unless overridden).
func (q *Quadtree[TFloat, T]) FindNearest(p Point[TFloat], k int) []Neighbor[TFloat, T] {
	return q.FindNearestLevels(p, k, q.opts.maxLevelsUp)
}

// FindNearestLevels returns up to k items near p, ordered by ascending squared distance.
//
// The search collects the leaf containing p, then repeatedly moves to the parent
// and collects the subtrees of the siblings it has not come from, until k
// candidates are found or maxLevelsUp ancestors have been visited. If it is
// still short, the whole subtree of the last node reached is collected again,
// which may report an item twice. This is an approximation: closer items in
// subtrees that were never reached are missed.
//
// The result is empty if p is outside the root region or k <= 0.
func (q *Quadtree[TFloat, T]) FindNearestLevels(p Point[TFloat], k int, maxLevelsUp int) []Neighbor[TFloat, T] {
	if k <= 0 {
		return nil
	}
	leaf, ok := q.descend(p)
	if !ok {
		return nil
	}

	var out []Neighbor[TFloat, T]
	out = q.collect(leaf, p, out)

	child := leaf
	parent := q.nodes[leaf].parent
	for level := 0; len(out) < k && parent >= 0 && level < maxLevelsUp; level++ {
		out = q.collectSiblings(parent, child, p, out)
		child = parent
		parent = q.nodes[parent].parent
	}
	if len(out) < k && q.nodes[child].state == divided {
		out = q.collect(child, p, out)
	}

	slices.SortStableFunc(out, func(a, b Neighbor[TFloat, T]) int {
		return cmp.Compare(a.Dist2, b.Dist2)
	})
	return out[:min(k, len(out))]
}

// descend returns the leaf whose region contains p.
func (q *Quadtree[TFloat, T]) descend(p Point[TFloat]) (NodeID, bool) {
	if !q.nodes[0].region.Contains(p) {
		return 0, false
	}
	id := NodeID(0)
	for q.nodes[id].state == divided {
		n := &q.nodes[id]
		id = n.child(n.region.Quadrant(p))
	}
	return id, true
}

// collect appends every item in the subtree rooted at id.
func (q *Quadtree[TFloat, T]) collect(id NodeID, p Point[TFloat], out []Neighbor[TFloat, T]) []Neighbor[TFloat, T] {
	n := &q.nodes[id]
	switch n.state {
	case filledLeaf:
		out = append(out, Neighbor[TFloat, T]{
			Item:     n.item,
			Location: n.loc,
			Dist2:    SquaredDistance(n.loc, p),
		})
	case divided:
		for c := NW; c <= SE; c++ {
			out = q.collect(n.child(c), p, out)
		}
	}
	return out
}

func (q *Quadtree[TFloat, T]) collectSiblings(parent, skip NodeID, p Point[TFloat], out []Neighbor[TFloat, T]) []Neighbor[TFloat, T] {
	n := &q.nodes[parent]
	if n.state != divided {
		return out
	}
	for c := NW; c <= SE; c++ {
		if id := n.child(c); id != skip {
			out = q.collect(id, p, out)
		}
	}
	return out
}

// Leaves calls fn for each occupied leaf, depth first in Quadrant order,
// until fn returns false.
func (q *Quadtree[TFloat, T]) Leaves(fn func(Leaf[TFloat, T]) bool) {
	q.walk(0, fn)
}

func (q *Quadtree[TFloat, T]) walk(id NodeID, fn func(Leaf[TFloat, T]) bool) bool {
	n := &q.nodes[id]
	switch n.state {
	case filledLeaf:
		return fn(Leaf[TFloat, T]{
			ID:       id,
			Region:   n.region,
			Depth:    n.depth,
			Item:     n.item,
			Location: n.loc,
		})
	case divided:
		first := n.firstChild
		for c := NW; c <= SE; c++ {
			if !q.walk(first+NodeID(c), fn) {
				return false
			}
		}
	}
	return true
}
