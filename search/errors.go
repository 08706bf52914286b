// Package: hexnum/search
//
// errors.go: sentinel errors for the search package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context (target, budget) is attached with %w at the failure site.
//   • Geometry failures (walk.ErrEdgeCollision, walk.ErrDoublingStreak) are
//     internal control flow and never leave Generate.
//   • Option constructors panic on meaningless values; Generate never panics.

package search

import "errors"

// ErrInvalidTarget indicates a target that cannot be drawn as a number
// pattern: NaN, ±Inf, a non-integer, or a magnitude beyond exact float64
// integers (2^53).
// Usage: if errors.Is(err, ErrInvalidTarget) { /* reject input */ }.
var ErrInvalidTarget = errors.New("search: invalid target")

// ErrExhausted indicates that the attempt budget (or the reduction depth)
// ran out before a collision-free pattern was found. It is an expected
// outcome for some targets, not a bug.
// Usage: if errors.Is(err, ErrExhausted) { /* report "no pattern within budget" */ }.
var ErrExhausted = errors.New("search: no pattern found within attempt budget")

// ErrInvalidPlan indicates a Plan entry that is neither Double nor a
// positive addition.
var ErrInvalidPlan = errors.New("search: invalid plan entry")
