package quadtree_test

import (
	"fmt"
	"log"

	quadtree "github.com/bmharper/quadtree-go"
)

func Example() {
	root, err := quadtree.NewCabIndex(quadtree.Point64{X: 100, Y: 100}, 100, 100)
	if err != nil {
		log.Fatal(err)
	}

	cabs := []struct {
		name string
		loc  quadtree.Point64
	}{
		{"Amit", quadtree.Point64{X: 120, Y: 120}},
		{"Bhavna", quadtree.Point64{X: 80, Y: 80}},
		{"Chirag", quadtree.Point64{X: 150, Y: 150}},
		{"Divya", quadtree.Point64{X: 20, Y: 20}},
	}
	for _, c := range cabs {
		if err := root.Insert(&quadtree.Cab{Name: c.name}, c.loc); err != nil {
			log.Fatal(err)
		}
	}

	for _, r := range root.FindNearest(quadtree.Point64{X: 110, Y: 110}, 3) {
		fmt.Printf("Cab %v at (%v, %v) dist2=%v\n", r.Item, r.Location.X, r.Location.Y, r.Dist2)
	}
	// Output:
	// Cab Amit at (120, 120) dist2=200
	// Cab Bhavna at (80, 80) dist2=1800
	// Cab Chirag at (150, 150) dist2=3200
}
