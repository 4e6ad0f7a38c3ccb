package iirdes_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/iirdes"
)

func ExampleDesign() {
	tf, err := iirdes.Design(iirdes.LowPass, iirdes.ProtoElliptic, []float64{0.2}, []float64{0.3}, 0.1, 40)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("order", tf.Order())
	// Output:
	// order 5
}

func ExampleButterworthOrder() {
	n, wn, _ := iirdes.ButterworthOrder([]float64{0.2}, []float64{0.3}, 0.1, 40)
	fmt.Printf("%d %.4f\n", n, wn[0])
	// Output:
	// 15 0.2247
}
