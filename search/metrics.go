package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generate outcomes, used as the "outcome" label.
const (
	outcomeOK        = "ok"
	outcomeZero      = "zero"
	outcomeCached    = "cached"
	outcomeExhausted = "exhausted"
	outcomeInvalid   = "invalid"
	outcomeCanceled  = "canceled"
)

// Metrics holds the Prometheus collectors of an Engine.
type Metrics struct {
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	attempts    prometheus.Histogram
	patternLen  prometheus.Histogram
	collisions  prometheus.Counter
	memoSkips   prometheus.Counter
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hexnum_generate_total",
			Help: "Total Generate calls by outcome",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexnum_generate_duration_seconds",
			Help:    "Generate duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}),
		attempts: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexnum_generate_attempts",
			Help:    "Attempts consumed per successful search",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100, 1000},
		}),
		patternLen: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexnum_pattern_length",
			Help:    "Angles per generated pattern, prefix excluded",
			Buckets: prometheus.LinearBuckets(0, 16, 12),
		}),
		collisions: f.NewCounter(prometheus.CounterOpts{
			Name: "hexnum_edge_collisions_total",
			Help: "Edge collisions met while simulating strategies",
		}),
		memoSkips: f.NewCounter(prometheus.CounterOpts{
			Name: "hexnum_bad_memo_skips_total",
			Help: "Doublings skipped because they complete a known-bad window",
		}),
	}
}
