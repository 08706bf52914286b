package walk

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/hexnum/hexgrid"
)

// Path is the immutable state of a number pattern under construction.
//
// signature holds the prefix and every accepted angle. value is the
// arithmetic accumulator (the magnitude; the prefix carries the sign).
// strokes is the persistent history of drawn edges, newest first.
// The zero Path is not usable; obtain one from Zero or Replay.
type Path struct {
	signature string
	negative  bool
	value     float64
	strokes   *stroke
	pos       hexgrid.Coord
	heading   hexgrid.Direction
	doubles   int
}

// Zero returns the canonical start state for a number of the given sign:
// the prefix strokes drawn from the origin heading StartHeading, value 0.
// The trailing LeftBack run of the prefix counts toward the doubling streak.
// Complexity: O(1).
func Zero(negative bool) Path {
	prefix := PositivePrefix
	if negative {
		prefix = NegativePrefix
	}

	origin := hexgrid.Coord{}
	first := origin.Step(StartHeading)
	key, _ := hexgrid.MakeEdge(origin, first)
	p := Path{
		negative: negative,
		strokes:  &stroke{key: key, index: 0},
		pos:      first,
		heading:  StartHeading,
	}
	for i := 0; i < len(prefix); i++ {
		// Both prefixes are fixed, collision-free walks near the origin.
		p, _ = p.advance(hexgrid.Angle(prefix[i]))
	}
	p.doubles = len(prefix) - len(strings.TrimRight(prefix, string(hexgrid.LeftBack)))

	return p
}

// TryAngle returns p extended by a, applying both its turn and its
// arithmetic rule. p itself is never modified.
//
// Errors:
//   - ErrDoublingStreak if a is LeftBack and would be the third in a row.
//   - *CollisionError (errors.Is ErrEdgeCollision) if the new stroke retraces one.
//   - ErrOutOfBounds if the stroke leaves the packable grid.
//   - hexgrid.ErrUnknownAngle for an invalid a.
//
// Complexity: O(n) worst case for the collision lookup, O(len(signature)) copy.
func (p Path) TryAngle(a hexgrid.Angle) (Path, error) {
	if !a.Valid() {
		return Path{}, fmt.Errorf("%w: %q", hexgrid.ErrUnknownAngle, byte(a))
	}
	doubles := 0
	if a == hexgrid.LeftBack {
		doubles = p.doubles + 1
		if doubles > MaxConsecutiveDoubles {
			return Path{}, ErrDoublingStreak
		}
	}

	next, err := p.advance(a)
	if err != nil {
		return Path{}, err
	}
	next.value = a.Apply(p.value)
	next.doubles = doubles

	return next, nil
}

// advance draws the stroke for a without touching value or the streak.
func (p Path) advance(a hexgrid.Angle) (Path, error) {
	heading := p.heading.Turn(a)
	pos := p.pos.Step(heading)
	key, err := hexgrid.MakeEdge(p.pos, pos)
	if err != nil {
		return Path{}, fmt.Errorf("%w: %v", ErrOutOfBounds, err)
	}

	index := len(p.signature) + 1
	if hit := p.strokes.find(key); hit >= 0 {
		return Path{}, &CollisionError{
			Stroke: index,
			Hit:    hit,
			Window: p.signature[hit:] + string(rune(a)),
		}
	}

	return Path{
		signature: p.signature + string(rune(a)),
		negative:  p.negative,
		value:     p.value,
		strokes:   &stroke{key: key, index: index, prev: p.strokes},
		pos:       pos,
		heading:   heading,
		doubles:   p.doubles,
	}, nil
}

// Valid reports whether p was produced by Zero, TryAngle or Replay.
func (p Path) Valid() bool { return p.strokes != nil }

// Signature returns the full drawable signature, prefix included.
func (p Path) Signature() string { return p.signature }

// Pattern returns the angles appended after the prefix.
func (p Path) Pattern() string {
	if len(p.signature) < PrefixLen {
		return ""
	}
	return p.signature[PrefixLen:]
}

// Len returns the number of angles appended after the prefix.
func (p Path) Len() int { return len(p.Pattern()) }

// Negative reports whether p encodes a negative number.
func (p Path) Negative() bool { return p.negative }

// Magnitude returns the arithmetic accumulator.
func (p Path) Magnitude() float64 { return p.value }

// Value returns the signed number p encodes.
func (p Path) Value() float64 {
	if p.negative {
		return -p.value
	}
	return p.value
}

// Heading returns the heading of the last stroke.
func (p Path) Heading() hexgrid.Direction { return p.heading }

// Position returns the endpoint of the last stroke.
func (p Path) Position() hexgrid.Coord { return p.pos }

// EdgeCount returns the number of drawn edges, the first stroke included.
func (p Path) EdgeCount() int {
	if p.strokes == nil {
		return 0
	}
	return p.strokes.index + 1
}

// ConsecutiveDoubles returns the length of the trailing LeftBack run.
func (p Path) ConsecutiveDoubles() int { return p.doubles }

// String returns the signature.
func (p Path) String() string { return p.signature }
