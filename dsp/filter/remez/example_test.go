package remez_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/remez"
)

func ExampleLowPass() {
	taps, err := remez.LowPass(1, 32000, 8000, 10000, 0.1, 40)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(taps))
	// Output:
	// 37
}

func ExampleEstimateOrder() {
	spec, _ := remez.EstimateOrder(
		[]float64{8000, 10000},
		[]float64{1, 0},
		[]float64{remez.PassbandDeviation(0.1), remez.StopbandDeviation(40)},
		32000,
	)

	fmt.Println(spec.Order, spec.Bands)
	// Output:
	// 34 [0 0.5 0.625 1]
}
