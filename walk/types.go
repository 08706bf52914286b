package walk

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hexnum/hexgrid"
)

// Sentinel errors for path transitions.
var (
	// ErrEdgeCollision indicates that a stroke would retrace an existing edge.
	ErrEdgeCollision = errors.New("walk: edge collision")

	// ErrDoublingStreak indicates a third consecutive LeftBack angle.
	ErrDoublingStreak = errors.New("walk: doubling streak exceeded")

	// ErrOutOfBounds indicates a stroke beyond the packable coordinate range.
	ErrOutOfBounds = errors.New("walk: stroke leaves the grid")

	// ErrUnknownPrefix indicates a signature that starts with neither prefix.
	ErrUnknownPrefix = errors.New("walk: signature has no number prefix")

	// ErrDiverged indicates that a full replay disagrees with the tracked state.
	ErrDiverged = errors.New("walk: tracked state diverged from replay")
)

const (
	// PositivePrefix opens every non-negative number signature.
	PositivePrefix = "aqaa"

	// NegativePrefix opens every negative number signature.
	NegativePrefix = "dedd"

	// PrefixLen is the length of either prefix.
	PrefixLen = 4

	// StartHeading is the heading of the first stroke of every number pattern.
	StartHeading = hexgrid.East

	// MaxConsecutiveDoubles bounds runs of LeftBack angles.
	MaxConsecutiveDoubles = 2

	// RevalidateMinLen is the pattern length (after the prefix) from which
	// strict callers replay the full signature after each step.
	RevalidateMinLen = 8
)

// CollisionError describes an edge collision: stroke Stroke would retrace
// stroke Hit. Window holds the angles that drew strokes Hit+1..Stroke, the
// shortest angle sequence that reproduces the collision from any context.
//
// errors.Is(err, ErrEdgeCollision) holds for every *CollisionError.
type CollisionError struct {
	Stroke int
	Hit    int
	Window string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("walk: edge collision: stroke %d retraces stroke %d (window %q)", e.Stroke, e.Hit, e.Window)
}

// Is matches ErrEdgeCollision.
func (e *CollisionError) Is(target error) bool {
	return target == ErrEdgeCollision
}

// stroke is one node of the persistent stroke history.
type stroke struct {
	key   hexgrid.EdgeKey
	index int
	prev  *stroke
}

// find returns the index of the stroke with key k, or -1.
func (s *stroke) find(k hexgrid.EdgeKey) int {
	for n := s; n != nil; n = n.prev {
		if n.key == k {
			return n.index
		}
	}
	return -1
}
