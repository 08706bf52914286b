package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hexnum/walk"
)

func TestReductionBases(t *testing.T) {
	assert.Equal(t, []int64{1}, reductionBases(1))
	assert.Equal(t, []int64{30}, reductionBases(30))
	assert.Equal(t, []int64{15, 31}, reductionBases(31))
	assert.Equal(t, []int64{15, 31, 62, 125, 250, 500, 1000}, reductionBases(1000))

	b := reductionBases(999_999)
	assert.Equal(t, int64(999_999), b[len(b)-1])
	assert.LessOrEqual(t, b[0], int64(directLimit))
	assert.Len(t, b, 16)
}

func TestChunkings(t *testing.T) {
	assert.Equal(t, [][]int{nil}, chunkings(0))
	assert.Equal(t, [][]int{{1}}, chunkings(1))
	assert.Equal(t, [][]int{{10}, {5, 5}}, chunkings(10))
	assert.Equal(t, [][]int{{27}, {2, 25}, {5, 22}, {17, 5, 5}}, chunkings(27))

	for c := 1; c <= 60; c++ {
		for _, ch := range chunkings(c) {
			assert.Equal(t, float64(c), Plan(ch).Value(), "chunking %v of %d", ch, c)
		}
	}
}

func TestRoster(t *testing.T) {
	assert.Equal(t, []Strategy{DoubleFirst, Compensate, Random, Mixed}, roster(0))
	assert.Equal(t, []Strategy{Random, Mixed}, roster(1))
	assert.Equal(t, "double-first", DoubleFirst.String())
	assert.Equal(t, "unknown", Strategy(9).String())
}

// TestSimulator_Plans runs each strategy alone and checks that any plan it
// returns reaches the target with one doubling per round.
func TestSimulator_Plans(t *testing.T) {
	o := DefaultOptions()
	for _, target := range []uint64{1, 29, 31, 1000, 65_535, 999_999} {
		bases := reductionBases(target)
		found := false
		for _, st := range []Strategy{DoubleFirst, Compensate, Random, Mixed} {
			sim := newSimulator(st, rngFromSeed(int64(target)), NewBadMemo(), bases, &o)
			plan, ok := sim.run(walk.Zero(false))
			if !ok {
				continue
			}
			found = true
			require.NoError(t, plan.Validate())
			assert.Equal(t, float64(target), plan.Value(), "%s plan %v", st, plan)
			assert.Equal(t, len(bases)-1, plan.Doublings())
			assert.LessOrEqual(t, sim.steps, o.NodeBudget)
		}
		assert.True(t, found, "no strategy found target %d", target)
	}
}

func TestSimulator_NodeBudget(t *testing.T) {
	o := DefaultOptions()
	o.NodeBudget = 3
	sim := newSimulator(DoubleFirst, rngFromSeed(1), nil, reductionBases(1000), &o)
	_, ok := sim.run(walk.Zero(false))
	assert.False(t, ok)
	assert.Equal(t, 3, sim.steps)
}

func TestDeriveRNG_Independent(t *testing.T) {
	a := deriveRNG(rngFromSeed(7), 1)
	b := deriveRNG(rngFromSeed(7), 1)
	c := deriveRNG(rngFromSeed(7), 2)
	x, y, z := a.Int63(), b.Int63(), c.Int63()
	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)
}

func TestSimulator_Deltas(t *testing.T) {
	o := DefaultOptions()
	bases := reductionBases(1000) // 15 31 62 125 250 500 1000
	df := newSimulator(DoubleFirst, rngFromSeed(1), nil, bases, &o)
	cp := newSimulator(Compensate, rngFromSeed(1), nil, bases, &o)

	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, df.deltas(0, 0, false))
	assert.Equal(t, []int64{1, 0}, df.deltas(1, 0, false))
	assert.Equal(t, []int64{0, 1}, cp.deltas(1, 0, false))
	assert.Equal(t, []int64{7, 6, 5, 4, 3, 2, 1, 0}, df.deltas(1, 3, false))
	assert.Equal(t, []int64{0}, df.deltas(len(bases)-1, 5, false), "last round is exact")

	shuffled := df.deltas(1, 3, true)
	assert.ElementsMatch(t, []int64{0, 1, 2, 3, 4, 5, 6, 7}, shuffled)

	o.Compensation = 2
	capped := newSimulator(Compensate, rngFromSeed(1), nil, bases, &o)
	assert.Equal(t, []int64{0, 1, 2}, capped.deltas(1, 3, false))
	for _, d := range capped.deltas(1, 3, false) {
		assert.GreaterOrEqual(t, capped.addition(1, 3, d), int64(0))
	}
}

func TestResultCache_EvictsLeastRecent(t *testing.T) {
	c := newResultCache(2)
	one, two, three := walk.Zero(false), walk.Zero(true), walk.Zero(false)

	c.put(1, one)
	c.put(2, two)
	_, ok := c.get(1) // 1 becomes most recent
	require.True(t, ok)
	c.put(3, three)

	assert.Equal(t, 2, c.len())
	assert.Equal(t, int64(1), c.evictions())
	_, ok = c.get(2)
	assert.False(t, ok, "least recently used entry goes first")
	_, ok = c.get(1)
	assert.True(t, ok)

	c.put(1, one)
	assert.Equal(t, 2, c.len(), "refresh does not grow the cache")

	c.clear()
	assert.Zero(t, c.len())
	_, ok = c.get(3)
	assert.False(t, ok)
}

func TestResultCache_Disabled(t *testing.T) {
	c := newResultCache(0)
	c.put(1, walk.Zero(false))
	_, ok := c.get(1)
	assert.False(t, ok)
	assert.Zero(t, c.len())
}

func TestRNGFromSeed_ZeroUsesDefault(t *testing.T) {
	assert.Equal(t, rngFromSeed(defaultSeed).Int63(), rngFromSeed(0).Int63())
	assert.NotEqual(t, rngFromSeed(2).Int63(), rngFromSeed(0).Int63())
}
