package numeral

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/katalvlaran/hexnum/walk"
)

const (
	// DirectLimit is the largest magnitude drawn by a single number pattern.
	DirectLimit = 999_999

	// maxFractionDigits keeps 10^k, and any k-digit numerator, exact in float64.
	maxFractionDigits = 15

	million  = 1_000_000
	thousand = 1_000

	// maxExactInteger bounds grouped integers; above it float64 skips integers.
	maxExactInteger = 1 << 53

	tracerName = "github.com/katalvlaran/hexnum/numeral"
)

// Source produces number patterns for integers; *search.Engine and the
// cache-backed patterncache.Source both satisfy it.
type Source interface {
	Generate(ctx context.Context, target float64) (walk.Path, error)
}

// Formatter decomposes targets into components.
type Formatter struct {
	src     Source
	printer *message.Printer
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLanguage selects the locale of component labels (default English).
func WithLanguage(tag language.Tag) Option {
	return func(f *Formatter) { f.printer = message.NewPrinter(tag) }
}

// WithLogger routes decomposition logs to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("numeral: WithLogger(nil)")
	}
	return func(f *Formatter) { f.logger = l }
}

// WithTracerProvider emits spans through tp. Panics on nil.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic("numeral: WithTracerProvider(nil)")
	}
	return func(f *Formatter) { f.tracer = tp.Tracer(tracerName) }
}

// NewFormatter returns a Formatter drawing number patterns from src.
// Panics on nil src.
func NewFormatter(src Source, opts ...Option) *Formatter {
	if src == nil {
		panic("numeral: NewFormatter(nil)")
	}
	f := &Formatter{
		src:     src,
		printer: message.NewPrinter(message.MatchLanguage("en")),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Components decomposes target into an evaluation-ordered component list.
//
// Errors: ErrInvalidTarget for NaN, ±Inf, integers beyond 2^53 and
// over-long fractions; any error
// of the Source (e.g. search.ErrExhausted) wrapped with the failing value.
func (f *Formatter) Components(ctx context.Context, target float64) ([]Component, error) {
	ctx, span := f.tracer.Start(ctx, "numeral.Formatter.Components",
		trace.WithAttributes(attribute.Float64("target", target)),
	)
	defer span.End()

	if math.IsNaN(target) || math.IsInf(target, 0) {
		err := fmt.Errorf("%w: %v", ErrInvalidTarget, target)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid target")
		return nil, err
	}

	var out []Component
	if err := f.emit(ctx, target, &out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decomposition failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("components", len(out)))
	f.logger.Debug("decomposed", slog.Float64("target", target), slog.Int("components", len(out)))
	return out, nil
}

// emit appends the components of v by the first rule that applies.
func (f *Formatter) emit(ctx context.Context, v float64, out *[]Component) error {
	switch {
	case v != math.Trunc(v):
		return f.emitDecimal(ctx, v, out)
	case math.Abs(v) > maxExactInteger:
		return fmt.Errorf("%w: |%v| exceeds 2^53", ErrInvalidTarget, v)
	case math.Abs(v) > DirectLimit:
		return f.emitGrouped(ctx, v, out)
	default:
		return f.emitNumeral(ctx, v, out)
	}
}

// emitDecimal: integer part, numerator, denominator, Divide, then Add or Subtract.
func (f *Formatter) emitDecimal(ctx context.Context, v float64, out *[]Component) error {
	negative := math.Signbit(v)
	digits := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intDigits, fracDigits, _ := strings.Cut(digits, ".")
	fracDigits = strings.TrimRight(fracDigits, "0")
	if len(fracDigits) > maxFractionDigits {
		return fmt.Errorf("%w: %v has %d fraction digits, at most %d are exact",
			ErrInvalidTarget, v, len(fracDigits), maxFractionDigits)
	}

	whole, err := strconv.ParseFloat(intDigits, 64)
	if err != nil {
		return fmt.Errorf("%w: %v: %v", ErrInvalidTarget, v, err)
	}
	numerator, err := strconv.ParseFloat(fracDigits, 64)
	if err != nil {
		return fmt.Errorf("%w: %v: %v", ErrInvalidTarget, v, err)
	}
	denominator := math.Pow10(len(fracDigits))

	if err := f.emit(ctx, math.Copysign(whole, signOf(negative)), out); err != nil {
		return err
	}
	if err := f.emit(ctx, numerator, out); err != nil {
		return err
	}
	if err := f.emit(ctx, denominator, out); err != nil {
		return err
	}
	f.combine(Divide, out)
	f.combine(merge(negative), out)
	return nil
}

// emitGrouped applies place-value grouping to an integer above DirectLimit.
// Groups are split in integer arithmetic; v is at most 2^53 in magnitude.
func (f *Formatter) emitGrouped(ctx context.Context, v float64, out *[]Component) error {
	negative := math.Signbit(v)
	mag := uint64(math.Abs(v))
	millions := mag / million
	thousands := mag % million / thousand
	units := mag % thousand

	if err := f.emit(ctx, math.Copysign(float64(millions), signOf(negative)), out); err != nil {
		return err
	}
	if err := f.emitNumeral(ctx, million, out); err != nil {
		return err
	}
	f.combine(Multiply, out)

	if thousands > 0 {
		if err := f.emitNumeral(ctx, float64(thousands), out); err != nil {
			return err
		}
		if err := f.emitNumeral(ctx, thousand, out); err != nil {
			return err
		}
		f.combine(Multiply, out)
		f.combine(merge(negative), out)
	}
	if units > 0 {
		if err := f.emitNumeral(ctx, float64(units), out); err != nil {
			return err
		}
		f.combine(merge(negative), out)
	}
	return nil
}

// emitNumeral appends one Source pattern.
func (f *Formatter) emitNumeral(ctx context.Context, v float64, out *[]Component) error {
	p, err := f.src.Generate(ctx, v)
	if err != nil {
		return fmt.Errorf("numeral %v: %w", v, err)
	}
	*out = append(*out, Component{
		Kind:     Numeral,
		Pattern:  p.Signature(),
		StartDir: walk.StartHeading,
		Label:    f.printer.Sprintf("Numerical Reflection: %d", int64(v)),
		Value:    v,
	})
	return nil
}

func (f *Formatter) combine(k Kind, out *[]Component) {
	c, _ := Combinator(k)
	*out = append(*out, c)
}

// merge picks the combinator that folds a lower group into the running total.
func merge(negative bool) Kind {
	if negative {
		return Subtract
	}
	return Add
}

func signOf(negative bool) float64 {
	if negative {
		return -1
	}
	return 1
}
