package patterncache_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/hexnum/patterncache"
)

func ExampleWriteText() {
	_ = patterncache.WriteText(os.Stdout, []patterncache.Entry{
		{Number: -7, Pattern: "deddqww"},
		{Number: 21, Pattern: "aqaaeew"},
	})
	// Output:
	// # number,pattern
	// 21,aqaaeew
	// -7,deddqww
}

func ExampleVerify() {
	p, err := patterncache.Verify(21, "aqaaeew")
	fmt.Println(p.Value(), err)

	_, err = patterncache.Verify(21, "aqaaeee")
	fmt.Println(errors.Is(err, patterncache.ErrStale))
	// Output:
	// 21 <nil>
	// true
}
