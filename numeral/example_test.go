package numeral_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hexnum/numeral"
	"github.com/katalvlaran/hexnum/search"
)

// ExampleFormatter_Components decomposes a decimal into numerals and distillations.
func ExampleFormatter_Components() {
	f := numeral.NewFormatter(search.NewEngine())
	cs, _ := f.Components(context.Background(), 3.25)
	for _, c := range cs {
		fmt.Println(c.Label)
	}
	v, _ := numeral.Evaluate(cs)
	fmt.Println("value:", v)

	// Output:
	// Numerical Reflection: 3
	// Numerical Reflection: 25
	// Numerical Reflection: 100
	// Division Distillation
	// Additive Distillation
	// value: 3.25
}
