package search

import (
	"math/rand"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/walk"
)

// directLimit is the largest remainder built by additions alone.
const directLimit = 30

// Strategy orders the choices a simulation explores at each reduction round.
type Strategy int

const (
	// DoubleFirst prefers the smallest addition after each doubling, so the
	// remainder is halved with as little compensation as possible.
	DoubleFirst Strategy = iota

	// Compensate prefers rounds that stay on the exact binary prefix of the
	// target and compensates only when the walk forces it.
	Compensate

	// Random shuffles every round's choices.
	Random

	// Mixed flips a coin per round between DoubleFirst and Random.
	Mixed
)

var strategyNames = [...]string{"double-first", "compensate", "random", "mixed"}

// String returns the strategy name used in logs.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// roster returns the strategies run in one attempt. The structured ones are
// deterministic, so only the first attempt runs them.
func roster(attempt int) []Strategy {
	if attempt == 0 {
		return []Strategy{DoubleFirst, Compensate, Random, Mixed}
	}
	return []Strategy{Random, Mixed}
}

// reductionBases returns b_0..b_m with b_m = mag and b_{j-1} = b_j >> 1,
// ending once b_0 ≤ directLimit. m is the number of reduction rounds.
func reductionBases(mag uint64) []int64 {
	var rev []int64
	for v := mag; ; v >>= 1 {
		rev = append(rev, int64(v))
		if v <= directLimit {
			break
		}
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// simulator runs one strategy as a bounded depth-first search against a
// parallel walk.Path.
//
// Round j builds v_j = b_j − δ_j with 0 ≤ δ_j ≤ compensation and δ_m = 0.
// Round 0 adds v_0 directly; round j ≥ 1 doubles v_{j-1} and then adds
// c_j = v_j − 2·v_{j-1}, which must be non-negative. Every angle is tried
// on the path as soon as it is chosen, so collisions prune the search at
// the round that causes them.
type simulator struct {
	strategy Strategy
	rng      *rand.Rand
	memo     *BadMemo
	bases    []int64
	comp     int64
	budget   int
	strict   bool

	steps      int
	collisions int
	memoSkips  int
	plan       Plan
}

func newSimulator(st Strategy, rng *rand.Rand, memo *BadMemo, bases []int64, o *Options) *simulator {
	return &simulator{
		strategy: st,
		rng:      rng,
		memo:     memo,
		bases:    bases,
		comp:     int64(o.Compensation),
		budget:   o.NodeBudget,
		strict:   o.StrictRevalidation,
	}
}

// run searches from start and returns the winning plan.
func (s *simulator) run(start walk.Path) (Plan, bool) {
	s.plan = s.plan[:0]
	if !s.round(0, start, 0) {
		return nil, false
	}
	return append(Plan(nil), s.plan...), true
}

func (s *simulator) spent() bool { return s.steps >= s.budget }

// round explores every choice of δ_j (and of addition chunking) at round j.
func (s *simulator) round(j int, p walk.Path, prevDelta int64) bool {
	if j > 0 {
		if s.memo != nil && s.memo.Blocks(p.Signature(), hexgrid.LeftBack) {
			s.memoSkips++
			return false
		}
		var ok bool
		if p, ok = s.step(p, hexgrid.LeftBack); !ok {
			return false
		}
		s.plan = append(s.plan, Double)
	}
	mark := len(s.plan)
	last := len(s.bases) - 1
	random := s.randomRound()

	for _, delta := range s.deltas(j, prevDelta, random) {
		c := s.addition(j, prevDelta, delta)
		ways := chunkings(int(c))
		if random {
			s.rng.Shuffle(len(ways), func(a, b int) { ways[a], ways[b] = ways[b], ways[a] })
		}
		for _, chunks := range ways {
			if q, ok := s.add(p, chunks); ok {
				s.plan = append(s.plan[:mark], chunks...)
				if j == last || s.round(j+1, q, delta) {
					return true
				}
			}
			s.plan = s.plan[:mark]
			if s.spent() {
				return false
			}
		}
	}
	if j > 0 {
		s.plan = s.plan[:mark-1]
	}
	return false
}

// randomRound reports whether this round's choices are shuffled.
func (s *simulator) randomRound() bool {
	switch s.strategy {
	case Random:
		return true
	case Mixed:
		return s.rng.Intn(2) == 0
	}
	return false
}

// addition returns what round j adds after its doubling (all of v_0 for j==0).
func (s *simulator) addition(j int, prevDelta, delta int64) int64 {
	if j == 0 {
		return s.bases[0] - delta
	}
	bit := s.bases[j] - 2*s.bases[j-1]
	return bit + 2*prevDelta - delta
}

// deltas returns the admissible δ_j in the order this strategy tries them.
func (s *simulator) deltas(j int, prevDelta int64, random bool) []int64 {
	if j == len(s.bases)-1 {
		return []int64{0}
	}
	var hi int64
	if j == 0 {
		hi = min(s.comp, s.bases[0]-1)
	} else {
		hi = min(s.comp, s.bases[j]-2*s.bases[j-1]+2*prevDelta)
	}
	out := make([]int64, 0, hi+1)
	for d := int64(0); d <= hi; d++ {
		out = append(out, d)
	}

	switch {
	case random:
		s.rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
	case s.strategy == DoubleFirst || s.strategy == Mixed:
		if j > 0 {
			for a, b := 0, len(out)-1; a < b; a, b = a+1, b-1 {
				out[a], out[b] = out[b], out[a]
			}
		}
	}
	return out
}

// add applies the greedy expansion of every chunk.
func (s *simulator) add(p walk.Path, chunks []int) (walk.Path, bool) {
	for _, c := range chunks {
		angles := additions(c)
		for i := 0; i < len(angles); i++ {
			var ok bool
			if p, ok = s.step(p, hexgrid.Angle(angles[i])); !ok {
				return walk.Path{}, false
			}
		}
	}
	return p, true
}

// step tries one angle within the node budget, recording collisions.
func (s *simulator) step(p walk.Path, a hexgrid.Angle) (walk.Path, bool) {
	if s.spent() {
		return walk.Path{}, false
	}
	s.steps++
	next, err := p.TryAngle(a)
	if err == nil && s.strict && next.Len() >= walk.RevalidateMinLen {
		err = next.Revalidate()
	}
	if err != nil {
		if _, ok := asCollision(err); ok {
			s.collisions++
			s.memo.recordErr(err)
		}
		return walk.Path{}, false
	}
	return next, true
}
