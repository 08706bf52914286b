// Package search finds number patterns: angle signatures whose arithmetic
// replay equals a target integer and whose walk never retraces an edge.
//
// What:
//
//   - Engine.Generate(ctx, target) returns a walk.Path for any integer with
//     |target| ≤ 2^53 whose halving depth stays within MaxDepth.
//   - The target is reduced top-down: each round halves the remainder after
//     a small compensating addition, until it is at most 30. Read bottom-up,
//     that is a Plan of additions and doublings starting from 0.
//   - Strategies (DoubleFirst, Compensate, Random, Mixed) order the choices
//     of every round. Each is simulated step by step against a walk.Path as
//     a bounded depth-first search, so a collision prunes the branch that
//     caused it instead of costing a whole attempt.
//   - A winning plan is executed on a fresh path and accepted only if its
//     value matches within Tolerance and a full replay agrees.
//
// Memos:
//
//   - BadMemo keeps the collision windows that end in a doubling. A window
//     collides in every context, so the memo prunes without ever rejecting a
//     valid pattern. It is consulted only before a doubling; pure additions
//     are never affected.
//   - Tried plans are skipped within one Generate call; the set is cleared
//     once it grows past 50 entries.
//   - Results are cached per Engine. Reset clears cache and memo.
//
// Determinism: with the same seed, the same sequence of Generate calls
// yields the same patterns. Concurrent calls are safe; each call draws its
// own RNG stream from the engine under a mutex.
//
// Errors:
//
//   - ErrInvalidTarget: NaN, ±Inf, non-integers, |target| > 2^53.
//   - ErrExhausted: attempt budget or depth cap ran out.
//   - ctx.Err(): cancellation, checked between attempts.
//
// Observability: slog records (discarded unless WithLogger), optional
// Prometheus collectors (WithMetrics) and OpenTelemetry spans.
package search
