package walk

import (
	"fmt"

	"github.com/katalvlaran/hexnum/hexgrid"
)

// Revalidate replays the whole signature from scratch and checks that it
// draws no duplicate edge and that the incrementally tracked strokes and
// value agree with the replay.
//
// Returns a *CollisionError (errors.Is ErrEdgeCollision) on a retraced edge
// and ErrDiverged on any disagreement.
// Complexity: O(n) time and memory.
func (p Path) Revalidate() error {
	if !p.Valid() {
		return ErrDiverged
	}
	keys, err := hexgrid.Edges(StartHeading, p.signature)
	if err != nil {
		return err
	}
	if len(keys) != p.EdgeCount() {
		return fmt.Errorf("%w: %d strokes tracked, %d replayed", ErrDiverged, p.EdgeCount(), len(keys))
	}

	n := p.strokes
	for i := len(keys) - 1; i >= 0; i-- {
		if n == nil || n.index != i || n.key != keys[i] {
			return fmt.Errorf("%w: stroke %d", ErrDiverged, i)
		}
		n = n.prev
	}

	seen := make(map[hexgrid.EdgeKey]int, len(keys))
	for i, k := range keys {
		if j, ok := seen[k]; ok {
			return &CollisionError{Stroke: i, Hit: j, Window: p.signature[j:i]}
		}
		seen[k] = i
	}

	var v float64
	for i := PrefixLen; i < len(p.signature); i++ {
		v = hexgrid.Angle(p.signature[i]).Apply(v)
	}
	if v != p.value {
		return fmt.Errorf("%w: value %v tracked, %v replayed", ErrDiverged, p.value, v)
	}

	return nil
}

// Replay rebuilds a Path from a full signature (prefix included), enforcing
// every transition rule. It is the way to trust a signature from outside,
// e.g. one read back from a cache.
//
// Errors: ErrUnknownPrefix, plus any error of TryAngle, wrapped with the
// offending position.
// Complexity: O(n²) worst case for collision lookups; n is small in practice.
func Replay(signature string) (Path, error) {
	if len(signature) < PrefixLen {
		return Path{}, ErrUnknownPrefix
	}
	var p Path
	switch signature[:PrefixLen] {
	case PositivePrefix:
		p = Zero(false)
	case NegativePrefix:
		p = Zero(true)
	default:
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, signature[:PrefixLen])
	}

	for i := PrefixLen; i < len(signature); i++ {
		a, err := hexgrid.ParseAngle(signature[i])
		if err != nil {
			return Path{}, fmt.Errorf("position %d: %w", i, err)
		}
		if p, err = p.TryAngle(a); err != nil {
			return Path{}, fmt.Errorf("position %d: %w", i, err)
		}
	}

	return p, nil
}
