package quadtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCabIndex(t *testing.T) {
	idx, err := NewCabIndex(Point64{100, 100}, 100, 100)
	require.NoError(t, err)

	cabs := []*Cab{}
	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 100; i++ {
		c := &Cab{Name: fmt.Sprintf("cab-%02d", i)}
		cabs = append(cabs, c)
		require.NoError(t, idx.Insert(c, Point64{rng.Float64() * 200, rng.Float64() * 200}))
	}
	require.Equal(t, 100, idx.Len())

	// The index hands back the same pointers it was given
	found := map[*Cab]bool{}
	for _, n := range idx.FindNearestLevels(Point64{100, 100}, 100, DefaultMaxDepth) {
		found[n.Item] = true
	}
	for _, c := range cabs {
		require.True(t, found[c], c.Name)
	}

	res := idx.FindNearest(Point64{50, 50}, 5)
	require.NotEmpty(t, res)
	require.LessOrEqual(t, len(res), 5)
	for _, n := range res {
		require.Equal(t, SquaredDistance(n.Location, Point64{50, 50}), n.Dist2)
	}
}

func TestNewCabIndexInvalid(t *testing.T) {
	_, err := NewCabIndex(Point64{0, 0}, 0, 10)
	require.ErrorIs(t, err, ErrInvalidRegion)
}

func TestCabString(t *testing.T) {
	require.Equal(t, "Amit", (&Cab{Name: "Amit"}).String())
	var c *Cab
	require.Equal(t, "<nil>", c.String())
}
