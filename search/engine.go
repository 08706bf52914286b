package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/walk"
)

const (
	// maxExactInteger is the largest magnitude float64 represents exactly
	// together with all its predecessors.
	maxExactInteger = 1 << 53

	// triedLimit is the size past which the tried-plan memo is cleared.
	triedLimit = 50
)

// Engine generates number patterns. It owns its RNG, the known-bad window
// memo and a bounded result cache; each is guarded, so one Engine may serve
// concurrent Generate calls.
type Engine struct {
	opts Options
	memo *BadMemo

	mu     sync.Mutex // guards rng and stream
	rng    *rand.Rand
	stream uint64

	cache *resultCache

	generations atomic.Int64
	cacheHits   atomic.Int64
	attempts    atomic.Int64
	plansTried  atomic.Int64
	collisions  atomic.Int64
	memoSkips   atomic.Int64
	exhausted   atomic.Int64
}

// Stats is a point-in-time snapshot of engine activity.
type Stats struct {
	Generations    int64 `json:"generations" yaml:"generations"`
	CacheHits      int64 `json:"cache_hits" yaml:"cache_hits"`
	Attempts       int64 `json:"attempts" yaml:"attempts"`
	PlansTried     int64 `json:"plans_tried" yaml:"plans_tried"`
	Collisions     int64 `json:"collisions" yaml:"collisions"`
	MemoSkips      int64 `json:"memo_skips" yaml:"memo_skips"`
	Exhausted      int64 `json:"exhausted" yaml:"exhausted"`
	BadWindows     int   `json:"bad_windows" yaml:"bad_windows"`
	CachedPatterns int   `json:"cached_patterns" yaml:"cached_patterns"`
	CacheEvictions int64 `json:"cache_evictions" yaml:"cache_evictions"`
}

// NewEngine returns an Engine configured by opts over DefaultOptions.
func NewEngine(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := o.Rand
	if r == nil {
		r = rngFromSeed(o.Seed)
	}
	e := &Engine{
		opts:  o,
		rng:   r,
		cache: newResultCache(o.CacheSize),
	}
	if !o.DisableBadMemo {
		e.memo = NewBadMemo()
	}
	return e
}

// Options returns the resolved configuration.
func (e *Engine) Options() Options { return e.opts }

// Memo returns the known-bad window memo, or nil when disabled.
func (e *Engine) Memo() *BadMemo { return e.memo }

// Generate returns a Path whose value equals target within the tolerance and
// whose walk never retraces an edge. A negative target (or -0) draws the
// negative prefix. Zero returns the bare prefix immediately.
//
// Errors:
//   - ErrInvalidTarget for NaN, ±Inf, non-integers and |target| > 2^53.
//   - ErrExhausted when the attempt budget or the depth cap runs out.
//   - ctx.Err() when ctx is done between attempts.
func (e *Engine) Generate(ctx context.Context, target float64) (walk.Path, error) {
	ctx, span := e.opts.Tracer.Start(ctx, "search.Engine.Generate",
		trace.WithAttributes(attribute.Float64("target", target)),
	)
	defer span.End()

	started := time.Now()
	p, attempts, outcome, err := e.generate(ctx, target)
	e.observe(outcome, attempts, time.Since(started), p)
	span.SetAttributes(attribute.String("outcome", outcome), attribute.Int("attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return walk.Path{}, err
	}
	span.SetAttributes(attribute.Int("pattern_len", p.Len()))
	return p, nil
}

func (e *Engine) generate(ctx context.Context, target float64) (walk.Path, int, string, error) {
	mag, negative, err := checkTarget(target)
	if err != nil {
		return walk.Path{}, 0, outcomeInvalid, err
	}
	e.generations.Add(1)
	if mag == 0 {
		return walk.Zero(negative), 0, outcomeZero, nil
	}
	key := cacheKey(mag, negative)
	if p, ok := e.lookup(key); ok {
		e.cacheHits.Add(1)
		return p, 0, outcomeCached, nil
	}

	log := e.opts.Logger.With(slog.Float64("target", target))
	bases := reductionBases(mag)
	if rounds := len(bases) - 1; rounds > e.opts.MaxDepth {
		e.exhausted.Add(1)
		log.Info("target exceeds depth cap", slog.Int("rounds", rounds), slog.Int("max_depth", e.opts.MaxDepth))
		return walk.Path{}, 0, outcomeExhausted,
			fmt.Errorf("%w: target %v needs %d reduction rounds, cap is %d", ErrExhausted, target, rounds, e.opts.MaxDepth)
	}

	rng := e.derive()
	start := walk.Zero(negative)
	tried := make(map[string]struct{})

	for attempt := 1; attempt <= e.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return walk.Path{}, attempt - 1, outcomeCanceled, err
		}
		e.attempts.Add(1)

		for _, st := range roster(attempt - 1) {
			sim := newSimulator(st, rng, e.memo, bases, &e.opts)
			plan, ok := sim.run(start)
			e.collisions.Add(int64(sim.collisions))
			e.memoSkips.Add(int64(sim.memoSkips))
			if m := e.opts.Metrics; m != nil {
				m.collisions.Add(float64(sim.collisions))
				m.memoSkips.Add(float64(sim.memoSkips))
			}
			if !ok {
				log.Debug("strategy dead end",
					slog.Int("attempt", attempt),
					slog.String("strategy", st.String()),
					slog.Int("steps", sim.steps),
				)
				continue
			}

			k := plan.Key()
			if _, seen := tried[k]; seen {
				continue
			}
			if len(tried) > triedLimit {
				clear(tried)
			}
			tried[k] = struct{}{}
			e.plansTried.Add(1)

			p, err := e.execute(start, plan)
			if err == nil && math.Abs(p.Magnitude()-float64(mag)) > e.opts.Tolerance {
				err = fmt.Errorf("value %v misses target", p.Magnitude())
			}
			if err == nil {
				err = p.Revalidate()
			}
			if err != nil {
				e.memo.recordErr(err)
				log.Debug("plan rejected",
					slog.Int("attempt", attempt),
					slog.String("strategy", st.String()),
					slog.String("plan", plan.String()),
					slog.String("error", err.Error()),
				)
				continue
			}

			e.store(key, p)
			log.Info("pattern found",
				slog.Int("attempts", attempt),
				slog.String("strategy", st.String()),
				slog.Int("pattern_len", p.Len()),
			)
			return p, attempt, outcomeOK, nil
		}
	}

	e.exhausted.Add(1)
	log.Info("attempt budget exhausted", slog.Int("attempts", e.opts.MaxAttempts))
	return walk.Path{}, e.opts.MaxAttempts, outcomeExhausted,
		fmt.Errorf("%w: target %v after %d attempts", ErrExhausted, target, e.opts.MaxAttempts)
}

// execute replays plan on start one primitive angle at a time.
func (e *Engine) execute(start walk.Path, plan Plan) (walk.Path, error) {
	angles, err := plan.Expand()
	if err != nil {
		return walk.Path{}, err
	}
	p := start
	for i := 0; i < len(angles); i++ {
		if p, err = p.TryAngle(hexgrid.Angle(angles[i])); err != nil {
			return walk.Path{}, fmt.Errorf("angle %d: %w", i, err)
		}
	}
	return p, nil
}

// derive hands out an independent RNG stream for one Generate call.
func (e *Engine) derive() *rand.Rand {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stream++
	return deriveRNG(e.rng, e.stream)
}

// Cached returns the cached pattern for an integer target, if any.
func (e *Engine) Cached(target float64) (walk.Path, bool) {
	mag, negative, err := checkTarget(target)
	if err != nil || mag == 0 {
		return walk.Path{}, false
	}
	return e.lookup(cacheKey(mag, negative))
}

func (e *Engine) lookup(key int64) (walk.Path, bool) { return e.cache.get(key) }

func (e *Engine) store(key int64, p walk.Path) { e.cache.put(key, p) }

// Reset clears the result cache and the known-bad window memo.
func (e *Engine) Reset() {
	e.cache.clear()
	if e.memo != nil {
		e.memo.Clear()
	}
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Generations: e.generations.Load(),
		CacheHits:   e.cacheHits.Load(),
		Attempts:    e.attempts.Load(),
		PlansTried:  e.plansTried.Load(),
		Collisions:  e.collisions.Load(),
		MemoSkips:   e.memoSkips.Load(),
		Exhausted:   e.exhausted.Load(),
	}
	if e.memo != nil {
		s.BadWindows = e.memo.Len()
	}
	s.CachedPatterns = e.cache.len()
	s.CacheEvictions = e.cache.evictions()
	return s
}

func (e *Engine) observe(outcome string, attempts int, d time.Duration, p walk.Path) {
	m := e.opts.Metrics
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
	if outcome == outcomeOK {
		m.attempts.Observe(float64(attempts))
		m.patternLen.Observe(float64(p.Len()))
	}
}

// checkTarget splits target into magnitude and sign.
func checkTarget(target float64) (uint64, bool, error) {
	switch {
	case math.IsNaN(target) || math.IsInf(target, 0):
		return 0, false, fmt.Errorf("%w: %v", ErrInvalidTarget, target)
	case target != math.Trunc(target):
		return 0, false, fmt.Errorf("%w: %v is not an integer", ErrInvalidTarget, target)
	case math.Abs(target) > maxExactInteger:
		return 0, false, fmt.Errorf("%w: |%v| exceeds 2^53", ErrInvalidTarget, target)
	}
	return uint64(math.Abs(target)), math.Signbit(target), nil
}

func cacheKey(mag uint64, negative bool) int64 {
	if negative {
		return -int64(mag)
	}
	return int64(mag)
}
