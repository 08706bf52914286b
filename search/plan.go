package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/hexnum/hexgrid"
)

// Double is the Plan entry for one doubling step.
const Double = -2

// Plan is one candidate arithmetic recipe: entries are Double or a positive
// addition n, applied in order from value 0. Additions expand greedily into
// Right (+10), Left (+5) and Forward (+1) angles, largest first.
type Plan []int

// additions returns the greedy angle breakdown of +n.
func additions(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n/10 + 1 + n%5)
	b.WriteString(strings.Repeat(string(hexgrid.Right), n/10))
	b.WriteString(strings.Repeat(string(hexgrid.Left), (n%10)/5))
	b.WriteString(strings.Repeat(string(hexgrid.Forward), n%5))
	return b.String()
}

// Validate reports the first entry that is neither Double nor positive.
func (p Plan) Validate() error {
	for i, v := range p {
		if v != Double && v <= 0 {
			return fmt.Errorf("%w: entry %d = %d", ErrInvalidPlan, i, v)
		}
	}
	return nil
}

// Expand returns the angle signature p draws, without prefix.
// Complexity: O(len(result)).
func (p Plan) Expand() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, v := range p {
		if v == Double {
			b.WriteByte(byte(hexgrid.LeftBack))
			continue
		}
		b.WriteString(additions(v))
	}
	return b.String(), nil
}

// Value evaluates p from 0.
func (p Plan) Value() float64 {
	var v float64
	for _, e := range p {
		if e == Double {
			v *= 2
			continue
		}
		v += float64(e)
	}
	return v
}

// Doublings counts the Double entries of p.
func (p Plan) Doublings() int {
	n := 0
	for _, v := range p {
		if v == Double {
			n++
		}
	}
	return n
}

// Key is the identity of p in the tried-plan memo.
func (p Plan) Key() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// String formats p as "[20 -2 21]".
func (p Plan) String() string {
	return "[" + strings.ReplaceAll(p.Key(), ",", " ") + "]"
}

// chunkings returns the ways of splitting the addition c into plan entries
// that draw distinct angle sequences. The first one is the plain greedy
// breakdown; the others move the +1 run or a +5 to the front, or turn one
// +10 into two +5.
func chunkings(c int) [][]int {
	if c <= 0 {
		return [][]int{nil}
	}
	tens, five, ones := c/10, (c%10)/5, c%5

	out := [][]int{{c}}
	seen := map[string]bool{additions(c): true}
	add := func(chunks ...int) {
		var b strings.Builder
		for _, v := range chunks {
			b.WriteString(additions(v))
		}
		if s := b.String(); !seen[s] {
			seen[s] = true
			out = append(out, chunks)
		}
	}
	if ones > 0 && c > ones {
		add(ones, c-ones)
	}
	if five == 1 && c > 5 {
		add(5, c-5)
	}
	if tens >= 1 {
		if c > 10 {
			add(c-10, 5, 5)
		} else {
			add(5, 5)
		}
	}
	return out
}
