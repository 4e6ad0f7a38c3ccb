package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleMaxAttenuation() {
	fmt.Printf("%s %.0f dB\n", TypeBlackman, MaxAttenuation(TypeBlackman, 0))
	// Output:
	// Blackman 74 dB
}
