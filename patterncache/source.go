package patterncache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/walk"
)

// DefaultLimit is the largest magnitude a Source caches.
const DefaultLimit = 999_999

// Lookup results, used as the "result" label.
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultStale = "stale"
	resultError = "error"
)

// Generator produces number patterns; *search.Engine satisfies it.
type Generator interface {
	Generate(ctx context.Context, target float64) (walk.Path, error)
}

// Source serves integers up to its limit from a Store and everything else
// from a Generator. It satisfies numeral.Source.
type Source struct {
	store   Store
	gen     Generator
	limit   int64
	logger  *slog.Logger
	lookups *prometheus.CounterVec

	hits    atomic.Int64
	misses  atomic.Int64
	repairs atomic.Int64
	errs    atomic.Int64
}

// SourceStats is a snapshot of Source activity.
type SourceStats struct {
	Hits    int64 `json:"hits" yaml:"hits"`
	Misses  int64 `json:"misses" yaml:"misses"`
	Repairs int64 `json:"repairs" yaml:"repairs"`
	Errors  int64 `json:"errors" yaml:"errors"`
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithLogger routes cache warnings to l. Panics on nil.
func WithLogger(l *slog.Logger) SourceOption {
	if l == nil {
		panic("patterncache: WithLogger(nil)")
	}
	return func(s *Source) { s.logger = l }
}

// WithLimit caches magnitudes up to n instead of DefaultLimit. Panics if n < 1.
func WithLimit(n int64) SourceOption {
	if n < 1 {
		panic("patterncache: WithLimit(n<1)")
	}
	return func(s *Source) { s.limit = n }
}

// WithRegisterer counts lookups by result in a collector registered with reg.
func WithRegisterer(reg prometheus.Registerer) SourceOption {
	return func(s *Source) {
		s.lookups = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hexnum_cache_lookups_total",
			Help: "Pattern cache lookups by result",
		}, []string{"result"})
	}
}

// NewSource returns a Source over store and gen. Panics on nil arguments.
func NewSource(store Store, gen Generator, opts ...SourceOption) *Source {
	if store == nil || gen == nil {
		panic("patterncache: NewSource with nil store or generator")
	}
	s := &Source{
		store:  store,
		gen:    gen,
		limit:  DefaultLimit,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the backing store.
func (s *Source) Store() Store { return s.store }

// Generate returns the cached pattern for a cacheable integer when it still
// verifies, and otherwise the Generator's pattern, which is then stored.
// Zero and non-integers always go to the Generator.
func (s *Source) Generate(ctx context.Context, target float64) (walk.Path, error) {
	n, ok := s.cacheable(target)
	if !ok {
		return s.gen.Generate(ctx, target)
	}
	if p, hit := s.Lookup(ctx, n); hit {
		return p, nil
	}

	p, err := s.gen.Generate(ctx, target)
	if err != nil {
		return walk.Path{}, err
	}
	if err := s.store.Put(ctx, n, p.Signature()); err != nil {
		s.count(resultError)
		s.logger.Warn("cache write failed", slog.Int64("number", n), slog.String("error", err.Error()))
	}
	return p, nil
}

// Lookup returns the verified pattern stored for n. A stored pattern that
// fails Verify is deleted and reported as a miss.
func (s *Source) Lookup(ctx context.Context, n int64) (walk.Path, bool) {
	pattern, ok, err := s.store.Get(ctx, n)
	if err != nil {
		s.count(resultError)
		s.logger.Warn("cache read failed", slog.Int64("number", n), slog.String("error", err.Error()))
		s.count(resultMiss)
		return walk.Path{}, false
	}
	if !ok {
		s.count(resultMiss)
		return walk.Path{}, false
	}

	p, err := Verify(n, pattern)
	if err != nil {
		s.count(resultStale)
		s.logger.Warn("stale cache entry",
			slog.Int64("number", n),
			slog.String("pattern", pattern),
			slog.String("error", err.Error()),
		)
		if err := s.store.Delete(ctx, n); err != nil {
			s.count(resultError)
			s.logger.Warn("cache delete failed", slog.Int64("number", n), slog.String("error", err.Error()))
		}
		return walk.Path{}, false
	}
	s.count(resultHit)
	return p, true
}

// Stats returns a snapshot of lookup counters.
func (s *Source) Stats() SourceStats {
	return SourceStats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Repairs: s.repairs.Load(),
		Errors:  s.errs.Load(),
	}
}

func (s *Source) cacheable(target float64) (int64, bool) {
	if math.IsNaN(target) || math.IsInf(target, 0) || target != math.Trunc(target) {
		return 0, false
	}
	if target == 0 || math.Abs(target) > float64(s.limit) {
		return 0, false
	}
	return int64(target), true
}

func (s *Source) count(result string) {
	switch result {
	case resultHit:
		s.hits.Add(1)
	case resultMiss:
		s.misses.Add(1)
	case resultStale:
		s.repairs.Add(1)
	case resultError:
		s.errs.Add(1)
	}
	if s.lookups != nil {
		s.lookups.WithLabelValues(result).Inc()
	}
}

// Verify checks that pattern draws n: the walk must never retrace an edge
// and replaying its angles must yield exactly n.
func Verify(n int64, pattern string) (walk.Path, error) {
	if err := hexgrid.Validate(walk.StartHeading, pattern); err != nil {
		return walk.Path{}, fmt.Errorf("%w: %v", ErrStale, err)
	}
	p, err := walk.Replay(pattern)
	if err != nil {
		return walk.Path{}, fmt.Errorf("%w: %v", ErrStale, err)
	}
	if p.Value() != float64(n) {
		return walk.Path{}, fmt.Errorf("%w: %q draws %v, not %d", ErrStale, pattern, p.Value(), n)
	}
	return p, nil
}
