// Package hexnum draws numbers as walks on a hexagonal grid: every number
// becomes an angle signature whose strokes never retrace an edge.
//
// 🚀 What is hexnum?
//
//	A small, thread-safe toolkit that brings together:
//		• Grid primitives: axial coordinates, headings, packed edge keys
//		• Walks: immutable paths that refuse retraced edges and long doubling runs
//		• Search: a seeded engine that finds a signature for any integer up to 2^53
//		• Decomposition: place-value and decimal splitting into combinable components
//		• Persistence: text, SQLite and Badger pattern caches, revalidated on read
//
// ✨ Angles and their arithmetic
//
//	w  forward      +1
//	q  turn left    +5
//	e  turn right   +10
//	a  sharp left   ×2
//	d  sharp right  ÷2
//
// A signature starts with aqaa (or dedd for negatives) from heading East.
//
// Packages:
//
//	hexgrid/      : Direction, Angle, Coord, EdgeKey, Trace and Validate
//	walk/         : Path, Zero, TryAngle, Replay and Revalidate
//	search/       : Engine, strategies, Plan, BadMemo and Prometheus metrics
//	numeral/      : Formatter, Component, distillations and Evaluate
//	patterncache/ : Store backends and the revalidating Source
//	cmd/hexnum/   : the CLI (generate, verify, batch, cache)
//
// Quick example, 21 drawn as aqaaeew:
//
//	(0,0) E (1,0) NW (1,-1) W (0,-1) SE (0,0) NE (1,-1) E (2,-1) SE (2,0) SE (2,1)
//
// The walk crosses (0,0) and (1,-1) twice but never reuses an edge.
//
// Start with search.NewEngine and numeral.NewFormatter, or run
//
//	go run ./cmd/hexnum generate 1234567
package hexnum
