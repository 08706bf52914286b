package walk_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/walk"
)

var benchSig = walk.PositivePrefix + strings.Repeat("weqw", 64)

// BenchmarkTryAngle measures incremental growth of a long zig-zag walk.
// Complexity: O(n²) overall for n strokes.
func BenchmarkTryAngle(b *testing.B) {
	body := benchSig[walk.PrefixLen:]
	for i := 0; i < b.N; i++ {
		p := walk.Zero(false)
		for j := 0; j < len(body); j++ {
			var err error
			if p, err = p.TryAngle(hexgrid.Angle(body[j])); err != nil {
				b.Fatalf("step %d: %v", j, err)
			}
		}
	}
}

// BenchmarkRevalidate measures a full replay against tracked state.
func BenchmarkRevalidate(b *testing.B) {
	p, err := walk.Replay(benchSig)
	if err != nil {
		b.Fatalf("setup signature invalid: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Revalidate()
	}
}
