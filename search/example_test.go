package search_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/hexnum/search"
)

// ExampleEngine_Generate draws small numbers, which need no doubling.
func ExampleEngine_Generate() {
	e := search.NewEngine(search.WithSeed(42))
	for _, target := range []float64{0, 21, -7} {
		p, err := e.Generate(context.Background(), target)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(p.Signature(), p.Value())
	}

	// Output:
	// aqaa 0
	// aqaaeew 21
	// deddqww -7
}

// ExampleErrExhausted shows the expected failure of a too-small budget.
func ExampleErrExhausted() {
	e := search.NewEngine(search.WithMaxDepth(3))
	_, err := e.Generate(context.Background(), 1_000_000)
	fmt.Println(errors.Is(err, search.ErrExhausted))

	// Output:
	// true
}

// ExamplePlan_Expand shows how additions and doublings become angles.
func ExamplePlan_Expand() {
	plan := search.Plan{23, search.Double, 5}
	angles, _ := plan.Expand()
	fmt.Println(angles, plan.Value())

	// Output:
	// eewwwaq 51
}
