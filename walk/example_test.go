package walk_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/walk"
)

// ExampleZero builds 21 by hand: two tens and a one.
func ExampleZero() {
	p := walk.Zero(false)
	for _, a := range []hexgrid.Angle{hexgrid.Right, hexgrid.Right, hexgrid.Forward} {
		p, _ = p.TryAngle(a)
	}
	fmt.Println(p.Signature(), p.Value())

	// Output:
	// aqaaeew 21
}

// ExamplePath_TryAngle shows a rejected stroke and the window that explains it.
func ExamplePath_TryAngle() {
	_, err := walk.Zero(false).TryAngle(hexgrid.RightBack)
	var ce *walk.CollisionError
	if errors.As(err, &ce) {
		fmt.Println("collision window:", ce.Window)
	}

	// Output:
	// collision window: qaad
}

// ExampleReplay trusts a negative signature read from outside.
func ExampleReplay() {
	p, err := walk.Replay("deddw")
	fmt.Println(p.Value(), err)

	// Output:
	// -1 <nil>
}
