package hexgrid_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/hexnum/hexgrid"
)

// BenchmarkValidate measures replay + duplicate detection on a long zig-zag walk.
// Complexity: O(n)
func BenchmarkValidate(b *testing.B) {
	sig := "aqaa" + strings.Repeat("weqw", 64)
	if err := hexgrid.Validate(hexgrid.East, sig); err != nil {
		b.Fatalf("setup signature invalid: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = hexgrid.Validate(hexgrid.East, sig)
	}
}

// BenchmarkMakeEdge measures canonical key packing.
func BenchmarkMakeEdge(b *testing.B) {
	a := hexgrid.Coord{Q: 3, R: -7}
	c := a.Step(hexgrid.SouthWest)
	for i := 0; i < b.N; i++ {
		_, _ = hexgrid.MakeEdge(c, a)
	}
}
