package numeral

import (
	"fmt"

	"github.com/katalvlaran/hexnum/hexgrid"
)

// Kind classifies a Component.
type Kind int

const (
	// Numeral pushes the number its pattern draws.
	Numeral Kind = iota
	// Add pops b, a and pushes a+b.
	Add
	// Subtract pops b, a and pushes a-b.
	Subtract
	// Multiply pops b, a and pushes a*b.
	Multiply
	// Divide pops b, a and pushes a/b.
	Divide
)

var kindNames = [...]string{"numeral", "add", "subtract", "multiply", "divide"}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes k by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: kind %d", ErrMalformed, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: kind %q", ErrMalformed, b)
}

// Component is one drawable step of a decomposition.
//
// For a Numeral, Pattern is the full signature (prefix included), StartDir
// is walk.StartHeading and Value is the number drawn. For a combinator,
// Pattern and StartDir are the fixed distillation and Value is zero.
type Component struct {
	Kind     Kind              `json:"kind" yaml:"kind"`
	Pattern  string            `json:"pattern" yaml:"pattern"`
	StartDir hexgrid.Direction `json:"start_dir" yaml:"start_dir"`
	Label    string            `json:"label" yaml:"label"`
	Value    float64           `json:"value,omitempty" yaml:"value,omitempty"`
}

// distillation is a fixed combinator pattern.
type distillation struct {
	pattern string
	start   hexgrid.Direction
	label   string
}

var distillations = map[Kind]distillation{
	Add:      {"waaw", hexgrid.NorthEast, "Additive Distillation"},
	Subtract: {"wddw", hexgrid.NorthWest, "Subtractive Distillation"},
	Multiply: {"waqaw", hexgrid.SouthEast, "Multiplicative Distillation"},
	Divide:   {"wdedw", hexgrid.NorthEast, "Division Distillation"},
}

// Combinator returns the fixed component for a combinator kind.
// ok is false for Numeral and unknown kinds.
func Combinator(k Kind) (Component, bool) {
	d, ok := distillations[k]
	if !ok {
		return Component{}, false
	}
	return Component{Kind: k, Pattern: d.pattern, StartDir: d.start, Label: d.label}, true
}
