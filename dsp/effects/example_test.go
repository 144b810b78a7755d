package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedals/dsp/effects"
)

func ExampleNewDelay() {
	d, err := effects.NewDelay()
	if err != nil {
		panic(err)
	}

	d.Prepare(48000, 256)

	fmt.Printf("%s: %.0f ms, tail %.2f s\n", d.Info().Name, d.Time(), d.Info().TailSeconds)
	// Output: Analog Delay: 114 ms, tail 0.65 s
}

func ExampleNewBoost() {
	b, err := effects.NewBoost()
	if err != nil {
		panic(err)
	}

	b.SetParameter("gain", 1)

	fmt.Printf("%s ceiling %.1f dB, gain x%.0f\n", b.Info().Name, effects.BoostCeilingDB, b.Gain())
	// Output: Micro Amp ceiling 26.0 dB, gain x20
}

func ExampleDistortion_Cutoff() {
	d := effects.NewDistortion()
	d.SetParameter("filter", 0)

	fmt.Printf("%.0f Hz\n", d.Cutoff())
	// Output: 475 Hz
}
