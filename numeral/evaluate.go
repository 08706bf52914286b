package numeral

import (
	"fmt"

	"github.com/katalvlaran/hexnum/walk"
)

// Evaluate runs components on a stack and returns the single value left.
// Numerals are replayed from their patterns, so a list whose patterns were
// tampered with fails even when Value fields still look right.
//
// Errors: ErrStackUnderflow, ErrDivideByZero, ErrUnbalanced, ErrMalformed,
// and replay errors of walk.Replay.
// Complexity: O(total pattern length).
func Evaluate(components []Component) (float64, error) {
	stack := make([]float64, 0, len(components))
	for i, c := range components {
		if c.Kind == Numeral {
			p, err := walk.Replay(c.Pattern)
			if err != nil {
				return 0, fmt.Errorf("component %d: %w", i, err)
			}
			stack = append(stack, p.Value())
			continue
		}

		want, ok := Combinator(c.Kind)
		if !ok || want.Pattern != c.Pattern {
			return 0, fmt.Errorf("%w: component %d is %s with pattern %q", ErrMalformed, i, c.Kind, c.Pattern)
		}
		if len(stack) < 2 {
			return 0, fmt.Errorf("%w: component %d (%s)", ErrStackUnderflow, i, c.Kind)
		}
		a, b := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]

		var r float64
		switch c.Kind {
		case Add:
			r = a + b
		case Subtract:
			r = a - b
		case Multiply:
			r = a * b
		case Divide:
			if b == 0 {
				return 0, fmt.Errorf("%w: component %d", ErrDivideByZero, i)
			}
			r = a / b
		}
		stack = append(stack, r)
	}
	if len(stack) != 1 {
		return 0, fmt.Errorf("%w: %d values left", ErrUnbalanced, len(stack))
	}
	return stack[0], nil
}
