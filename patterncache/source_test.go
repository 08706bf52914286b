package patterncache_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hexnum/numeral"
	"github.com/katalvlaran/hexnum/patterncache"
	"github.com/katalvlaran/hexnum/search"
	"github.com/katalvlaran/hexnum/walk"
)

func newTextSource(t *testing.T, opts ...patterncache.SourceOption) (*patterncache.Source, patterncache.Store) {
	t.Helper()
	st, err := patterncache.OpenText(filepath.Join(t.TempDir(), "patterns.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return patterncache.NewSource(st, search.NewEngine(search.WithSeed(1)), opts...), st
}

func TestSource_MissThenHit(t *testing.T) {
	src, st := newTextSource(t)
	ctx := context.Background()

	first, err := src.Generate(ctx, 1234)
	require.NoError(t, err)
	assert.Equal(t, 1234.0, first.Value())

	stored, ok, err := st.Get(ctx, 1234)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.Signature(), stored)

	second, err := src.Generate(ctx, 1234)
	require.NoError(t, err)
	assert.Equal(t, first.Signature(), second.Signature())
	assert.Equal(t, patterncache.SourceStats{Hits: 1, Misses: 1}, src.Stats())
}

func TestSource_RepairsStaleEntries(t *testing.T) {
	cases := []struct {
		name    string
		n       int64
		pattern string
	}{
		{"wrong value", 21, "aqaaeee"},
		{"wrong sign", -7, "aqaaeqw"},
		{"retraced edge", 30, "aqaaeeeeee"},
		{"unknown angle", 5, "aqaaxq"},
		{"no prefix", 1, "w"},
		{"doubling streak", 8, "aqaawaaa"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, st := newTextSource(t)
			ctx := context.Background()
			require.NoError(t, st.Put(ctx, tc.n, tc.pattern))

			p, err := src.Generate(ctx, float64(tc.n))
			require.NoError(t, err)
			assert.Equal(t, float64(tc.n), p.Value())
			require.NoError(t, p.Revalidate())

			stored, ok, err := st.Get(ctx, tc.n)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, p.Signature(), stored, "stale entry replaced")
			assert.Equal(t, int64(1), src.Stats().Repairs)
		})
	}
}

func TestSource_BypassesCache(t *testing.T) {
	src, st := newTextSource(t)
	ctx := context.Background()

	z, err := src.Generate(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, walk.PositivePrefix, z.Signature())

	big, err := src.Generate(ctx, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, big.Value())

	_, err = src.Generate(ctx, 2.5)
	assert.ErrorIs(t, err, search.ErrInvalidTarget)

	all, err := st.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, patterncache.SourceStats{}, src.Stats())
}

func TestSource_WithLimit(t *testing.T) {
	src, st := newTextSource(t, patterncache.WithLimit(10))
	ctx := context.Background()
	for _, n := range []float64{10, 11, -10} {
		_, err := src.Generate(ctx, n)
		require.NoError(t, err)
	}
	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(10), all[0].Number)
	assert.Equal(t, int64(-10), all[1].Number)
}

// brokenStore fails every call.
type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(context.Context, int64) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Put(context.Context, int64, string) error         { return errBroken }
func (brokenStore) Delete(context.Context, int64) error              { return errBroken }
func (brokenStore) All(context.Context) ([]patterncache.Entry, error) { return nil, errBroken }
func (brokenStore) Close() error                                      { return nil }

func TestSource_StoreFailuresDegrade(t *testing.T) {
	src := patterncache.NewSource(brokenStore{}, search.NewEngine(search.WithSeed(3)))
	p, err := src.Generate(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, 77.0, p.Value())
	assert.Equal(t, patterncache.SourceStats{Misses: 1, Errors: 2}, src.Stats())
}

func TestSource_GeneratorErrorsPropagate(t *testing.T) {
	st, err := patterncache.OpenText(filepath.Join(t.TempDir(), "p.txt"))
	require.NoError(t, err)
	defer st.Close()

	src := patterncache.NewSource(st, search.NewEngine(search.WithMaxDepth(1)))
	_, err = src.Generate(context.Background(), 999_999)
	assert.ErrorIs(t, err, search.ErrExhausted)

	all, err := st.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSource_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	src, st := newTextSource(t, patterncache.WithRegisterer(reg))
	ctx := context.Background()
	require.NoError(t, st.Put(ctx, 21, "aqaaeee"))

	for _, n := range []float64{21, 21, 3} {
		_, err := src.Generate(ctx, n)
		require.NoError(t, err)
	}

	mfs, err := reg.Gather()
	require.NoError(t, err)
	results := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "hexnum_cache_lookups_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				results[lp.GetValue()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, map[string]float64{"stale": 1, "hit": 1, "miss": 1}, results)
}

func TestSource_FeedsFormatter(t *testing.T) {
	src, st := newTextSource(t)
	f := numeral.NewFormatter(src)
	ctx := context.Background()

	comps, err := f.Components(ctx, -1_234_567.5)
	require.NoError(t, err)
	v, err := numeral.Evaluate(comps)
	require.NoError(t, err)
	assert.Equal(t, -1_234_567.5, v)

	all, err := st.All(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)
	for _, e := range all {
		_, err := patterncache.Verify(e.Number, e.Pattern)
		assert.NoError(t, err, "entry %d", e.Number)
	}
}

func TestVerify(t *testing.T) {
	p, err := patterncache.Verify(21, "aqaaeew")
	require.NoError(t, err)
	assert.Equal(t, 21.0, p.Value())

	_, err = patterncache.Verify(22, "aqaaeew")
	assert.ErrorIs(t, err, patterncache.ErrStale)
	_, err = patterncache.Verify(30, "aqaaeeeeee")
	assert.ErrorIs(t, err, patterncache.ErrStale)
}

func TestNewSource_Panics(t *testing.T) {
	assert.Panics(t, func() { patterncache.NewSource(nil, search.NewEngine()) })
	assert.Panics(t, func() { patterncache.NewSource(brokenStore{}, nil) })
	assert.Panics(t, func() { patterncache.WithLimit(0) })
	assert.Panics(t, func() { patterncache.WithLogger(nil) })
}
