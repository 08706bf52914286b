package numeral

import "errors"

var (
	// ErrInvalidTarget indicates NaN, ±Inf, or a fraction with more digits
	// than float64 can carry exactly.
	ErrInvalidTarget = errors.New("numeral: invalid target")

	// ErrStackUnderflow indicates a combinator with fewer than two operands.
	ErrStackUnderflow = errors.New("numeral: stack underflow")

	// ErrDivideByZero indicates a Divide whose divisor is zero.
	ErrDivideByZero = errors.New("numeral: division by zero")

	// ErrUnbalanced indicates a component list that leaves other than one value.
	ErrUnbalanced = errors.New("numeral: unbalanced component list")

	// ErrMalformed indicates a component whose pattern does not match its kind.
	ErrMalformed = errors.New("numeral: malformed component")
)
