// Package hexgrid treats the hex grid that patterns are drawn on as a graph of
// lattice points joined by undirected edges, and replays angle signatures
// as strokes over it.
//
// What:
//
//   - Direction is one of six headings (NorthEast … NorthWest), clockwise.
//   - Angle is one of five turns relative to the current heading:
//     Forward 'w', Left 'q', Right 'e', LeftBack 'a', RightBack 'd'.
//     Each Angle also carries an arithmetic rule (+1, +5, +10, ×2, ÷2), so a
//     signature is simultaneously a walk and a computation.
//   - Coord is an axial lattice coordinate; Direction.Delta is its step offset.
//   - EdgeKey packs an unordered pair of adjacent coordinates into one uint64,
//     so MakeEdge(a,b) == MakeEdge(b,a).
//   - Trace and Validate replay a signature and detect retraced edges.
//
// Why:
//
//   - Pattern strokes must never coincide; comparing packed keys makes that
//     check a single integer comparison.
//
// Complexity:
//
//   - Turn, Delta, Step, MakeEdge: O(1).
//   - Trace, Validate:             O(n) time and memory, n = len(signature).
//
// Errors:
//
//   - ErrUnknownAngle:  a signature character outside {w,q,e,a,d}.
//   - ErrOutOfRange:    a coordinate beyond ±MaxCoord cannot be packed.
//   - ErrDuplicateEdge: a stroke retraces an earlier one.
package hexgrid
