package shaper_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedals/dsp/shaper"
)

func ExampleSoftClip() {
	for _, v := range []float64{0.2, 0.6, 1, 4} {
		fmt.Printf("%.4f\n", shaper.SoftClip(v, 0.6, 0.2))
	}

	// Output:
	// 0.2000
	// 0.5523
	// 0.5990
	// 0.6000
}
