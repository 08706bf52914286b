// File: hexgrid/example_test.go
package hexgrid_test

import (
	"fmt"

	"github.com/katalvlaran/hexnum/hexgrid"
)

// ExampleTrace replays the positive-number prefix "aqaa" from East and shows
// that the fifth stroke reuses a point, but not an edge.
func ExampleTrace() {
	pts, _ := hexgrid.Trace(hexgrid.East, "aqaa")
	fmt.Println(pts)
	fmt.Println("valid:", hexgrid.Validate(hexgrid.East, "aqaa") == nil)

	// Output:
	// [(0,0) (1,0) (1,-1) (0,-1) (0,0) (1,-1)]
	// valid: true
}

// ExampleDirection_Turn shows the five turns available from East.
func ExampleDirection_Turn() {
	for _, a := range hexgrid.Angles {
		fmt.Printf("%s -> %v\n", a, hexgrid.East.Turn(a))
	}

	// Output:
	// w -> EAST
	// q -> NORTH_EAST
	// e -> SOUTH_EAST
	// a -> NORTH_WEST
	// d -> SOUTH_WEST
}
