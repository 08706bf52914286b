package hexgrid

import "fmt"

// Trace replays signature from the origin with an initial stroke in heading
// start, then one stroke per angle. It returns the visited lattice points:
// len(signature)+2 points for len(signature)+1 strokes.
//
// Returns ErrUnknownAngle on any character outside {w,q,e,a,d}.
// Complexity: O(n) time and memory.
func Trace(start Direction, signature string) ([]Coord, error) {
	pts := make([]Coord, 0, len(signature)+2)
	pos := Coord{}
	heading := start
	pos = pos.Step(heading)
	pts = append(pts, Coord{}, pos)
	for i := 0; i < len(signature); i++ {
		a, err := ParseAngle(signature[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		heading = heading.Turn(a)
		pos = pos.Step(heading)
		pts = append(pts, pos)
	}
	return pts, nil
}

// Edges returns the edge key of every stroke of signature, in drawing order.
// Complexity: O(n).
func Edges(start Direction, signature string) ([]EdgeKey, error) {
	pts, err := Trace(start, signature)
	if err != nil {
		return nil, err
	}
	keys := make([]EdgeKey, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		k, err := MakeEdge(pts[i-1], pts[i])
		if err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i-1, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Validate reports whether signature draws a walk that never repeats an
// undirected edge. The start heading does not change the outcome, since
// rotating a walk preserves its self-intersections; it is accepted so that
// callers can validate exactly what they will draw.
//
// Returns ErrDuplicateEdge (wrapped with both stroke indices) on the first
// retraced edge, or the errors of Edges.
// Complexity: O(n) time and memory.
func Validate(start Direction, signature string) error {
	keys, err := Edges(start, signature)
	if err != nil {
		return err
	}
	seen := make(map[EdgeKey]int, len(keys))
	for i, k := range keys {
		if j, ok := seen[k]; ok {
			return fmt.Errorf("%w: stroke %d retraces stroke %d", ErrDuplicateEdge, i, j)
		}
		seen[k] = i
	}
	return nil
}
