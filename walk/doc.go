// Package walk implements the immutable path state behind number patterns:
// a signature that is at once a self-avoiding walk on the hex grid and an
// arithmetic computation.
//
// What:
//
//   - Zero(negative) seeds a Path with the fixed prefix "aqaa" (non-negative)
//     or "dedd" (negative), value 0, and the prefix strokes pre-registered.
//   - Path.TryAngle(a) returns a strictly extended copy or fails with
//     ErrEdgeCollision (the new stroke retraces one already drawn) or
//     ErrDoublingStreak (a third LeftBack in a row).
//   - Path.Revalidate replays the whole signature from scratch and checks it
//     against the incrementally maintained state.
//   - Replay rebuilds a Path from a full signature, e.g. a cached one.
//
// Invariants:
//
//   - The edge set always equals the edges implied by replaying the signature.
//   - consecutive doublings never exceed MaxConsecutiveDoubles.
//   - No edge appears twice.
//
// Complexity:
//
//   - Zero, TryAngle: O(1) amortized allocation; collision lookup O(n).
//   - Revalidate, Replay: O(n).
//
// Paths share their stroke history structurally; nothing in a Path is ever
// mutated after construction, so Paths may be read from any goroutine.
package walk
