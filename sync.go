package quadtree

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SyncQuadtree guards a Quadtree with a read/write lock.
// Inserts are exclusive, because a split can touch any number of nodes.
// Queries never mutate the tree, so they share the read lock.
type SyncQuadtree[TFloat float32 | float64, T any] struct {
	mu   sync.RWMutex
	tree *Quadtree[TFloat, T]
}

// NewSync creates an empty, lock-guarded tree covering region.
func NewSync[TFloat float32 | float64, T any](region Rect[TFloat], optFns ...Option) (*SyncQuadtree[TFloat, T], error) {
	tree, err := New[TFloat, T](region, optFns...)
	if err != nil {
		return nil, err
	}
	return &SyncQuadtree[TFloat, T]{tree: tree}, nil
}

func (s *SyncQuadtree[TFloat, T]) Insert(item T, loc Point[TFloat]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Insert(item, loc)
}

func (s *SyncQuadtree[TFloat, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

func (s *SyncQuadtree[TFloat, T]) FindNearest(p Point[TFloat], k int) []Neighbor[TFloat, T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.FindNearest(p, k)
}

func (s *SyncQuadtree[TFloat, T]) FindNearestLevels(p Point[TFloat], k, maxLevelsUp int) []Neighbor[TFloat, T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.FindNearestLevels(p, k, maxLevelsUp)
}

// FindNearestBatch runs FindNearest for every query point in parallel.
// results[i] belongs to queries[i]. Inserts are blocked until the batch is done.
// If ctx is cancelled, the remaining queries are skipped and ctx.Err() is returned.
func (s *SyncQuadtree[TFloat, T]) FindNearestBatch(ctx context.Context, queries []Point[TFloat], k int) ([][]Neighbor[TFloat, T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([][]Neighbor[TFloat, T], len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.tree.opts.batchConcurrency)

	for i, p := range queries {
		i, p := i, p
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.tree.FindNearest(p, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
