// Package: hexnum/search
//
// options.go: functional options for Engine.
//
// Contract:
//   • Options are functional (type Option func(*Options)).
//   • Option constructors validate and panic on meaningless inputs.
//     The engine itself never panics.
//   • Defaults mirror the reference budget: 200 000 attempts, 30 reduction
//     rounds, absolute tolerance 1e-3.

package search

import (
	"io"
	"log/slog"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultMaxAttempts is the attempt budget of one Generate call.
	DefaultMaxAttempts = 200_000

	// DefaultMaxDepth caps the number of reduction rounds (doublings).
	DefaultMaxDepth = 30

	// DefaultTolerance is the absolute value tolerance at acceptance.
	DefaultTolerance = 1e-3

	// DefaultNodeBudget bounds the TryAngle calls of one strategy run.
	DefaultNodeBudget = 4096

	// DefaultCompensation bounds how far a round's partial value may sit
	// below the exact binary prefix of the target.
	DefaultCompensation = 20

	// DefaultCacheSize bounds the patterns kept by the result cache.
	DefaultCacheSize = 4096

	// tracerName identifies spans emitted by this package.
	tracerName = "github.com/katalvlaran/hexnum/search"
)

// Option configures an Engine.
type Option func(*Options)

// Options holds the resolved engine configuration.
type Options struct {
	// Seed feeds the engine's RNG when Rand is nil; 0 selects the default seed.
	Seed int64

	// Rand, if non-nil, is the engine's base RNG. The engine takes ownership.
	Rand *rand.Rand

	// MaxAttempts is the attempt budget of one Generate call.
	MaxAttempts int

	// MaxDepth caps reduction rounds; deeper targets fail with ErrExhausted.
	MaxDepth int

	// Tolerance is the absolute error accepted between pattern value and target.
	Tolerance float64

	// NodeBudget bounds TryAngle calls per strategy simulation.
	NodeBudget int

	// Compensation bounds the per-round deviation from the binary prefix.
	Compensation int

	// StrictRevalidation replays the whole signature after every simulated
	// step once the pattern reaches walk.RevalidateMinLen.
	StrictRevalidation bool

	// CacheSize bounds the result cache; least recently used patterns are
	// evicted first. 0 disables the cache.
	CacheSize int

	// DisableBadMemo turns the known-bad window memo off.
	DisableBadMemo bool

	// Logger receives attempt and outcome records; discard by default.
	Logger *slog.Logger

	// Metrics, if non-nil, receives counters and histograms.
	Metrics *Metrics

	// Tracer emits spans around Generate.
	Tracer trace.Tracer
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:  DefaultMaxAttempts,
		MaxDepth:     DefaultMaxDepth,
		Tolerance:    DefaultTolerance,
		NodeBudget:   DefaultNodeBudget,
		Compensation: DefaultCompensation,
		CacheSize:    DefaultCacheSize,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:       otel.Tracer(tracerName),
	}
}

// WithSeed sets the seed of the engine RNG. seed==0 selects the default seed.
// Complexity: O(1).
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
		o.Rand = nil
	}
}

// WithRand installs r as the base RNG. Panics on nil.
// Complexity: O(1).
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("search: WithRand(nil)")
	}
	return func(o *Options) { o.Rand = r }
}

// WithMaxAttempts sets the attempt budget. Panics if n < 1.
func WithMaxAttempts(n int) Option {
	if n < 1 {
		panic("search: WithMaxAttempts(n<1)")
	}
	return func(o *Options) { o.MaxAttempts = n }
}

// WithMaxDepth caps reduction rounds. Panics if n < 0.
func WithMaxDepth(n int) Option {
	if n < 0 {
		panic("search: WithMaxDepth(n<0)")
	}
	return func(o *Options) { o.MaxDepth = n }
}

// WithTolerance sets the acceptance tolerance. Panics if tol is negative or NaN.
func WithTolerance(tol float64) Option {
	if !(tol >= 0) {
		panic("search: WithTolerance(tol<0)")
	}
	return func(o *Options) { o.Tolerance = tol }
}

// WithNodeBudget bounds the TryAngle calls of one strategy simulation.
// Panics if n < 1.
func WithNodeBudget(n int) Option {
	if n < 1 {
		panic("search: WithNodeBudget(n<1)")
	}
	return func(o *Options) { o.NodeBudget = n }
}

// WithCompensation bounds how far below the exact binary prefix a round's
// partial value may sit. Panics if d < 0.
func WithCompensation(d int) Option {
	if d < 0 {
		panic("search: WithCompensation(d<0)")
	}
	return func(o *Options) { o.Compensation = d }
}

// WithCacheSize bounds the result cache to n patterns; 0 disables it.
// Panics if n < 0.
func WithCacheSize(n int) Option {
	if n < 0 {
		panic("search: WithCacheSize(n<0)")
	}
	return func(o *Options) { o.CacheSize = n }
}

// WithStrictRevalidation replays the full signature after every simulated
// step once the pattern reaches walk.RevalidateMinLen.
func WithStrictRevalidation() Option {
	return func(o *Options) { o.StrictRevalidation = true }
}

// WithoutBadMemo disables the known-bad window memo.
func WithoutBadMemo() Option {
	return func(o *Options) { o.DisableBadMemo = true }
}

// WithLogger routes engine logs to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("search: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithMetrics reports engine activity to m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("search: WithMetrics(nil)")
	}
	return func(o *Options) { o.Metrics = m }
}

// WithTracerProvider emits spans through tp instead of the global provider.
// Panics on nil.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic("search: WithTracerProvider(nil)")
	}
	return func(o *Options) { o.Tracer = tp.Tracer(tracerName) }
}
