package iirdes

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestLowpassToLowpassScalesFrequency(t *testing.T) {
	proto, _ := Chebyshev1(4, 1)
	f := LowpassToLowpass(proto, 3)

	for _, w := range []float64{0, 0.5, 1, 2} {
		got := f.Response(complex(0, 3*w))
		want := proto.Response(complex(0, w))

		if cmplx.Abs(got-want) > 1e-12 {
			t.Fatalf("w=%v: got %v, want %v", w, got, want)
		}
	}
}

func TestLowpassToHighpassMirrorsFrequency(t *testing.T) {
	proto, _ := Elliptic(3, 0.5, 40)
	f := LowpassToHighpass(proto, 2)

	if len(f.Zeros) != len(f.Poles) {
		t.Fatalf("high-pass must have as many zeros as poles: %d vs %d", len(f.Zeros), len(f.Poles))
	}

	for _, w := range []float64{0.25, 1, 4} {
		got := cmplx.Abs(f.Response(complex(0, 2/w)))
		want := cmplx.Abs(proto.Response(complex(0, w)))

		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("w=%v: got %v, want %v", w, got, want)
		}
	}
}

func TestLowpassToBandpassCentre(t *testing.T) {
	proto, _ := Butterworth(3)
	f := LowpassToBandpass(proto, 2, 0.5)

	if len(f.Poles) != 6 || len(f.Zeros) != 3 {
		t.Fatalf("got %d poles, %d zeros", len(f.Poles), len(f.Zeros))
	}

	if g := cmplx.Abs(f.Response(2i)); math.Abs(g-1) > 1e-12 {
		t.Fatalf("centre gain %v, want 1", g)
	}

	// Band edges are the geometric pair around the centre with width bw.
	lo := (-0.5 + math.Sqrt(0.25+16)) / 2
	for _, w := range []float64{lo, lo + 0.5} {
		if g := cmplx.Abs(f.Response(complex(0, w))); math.Abs(g-math.Sqrt(0.5)) > 1e-12 {
			t.Fatalf("edge %v gain %v, want -3 dB", w, g)
		}
	}
}

func TestLowpassToBandstopNotch(t *testing.T) {
	proto, _ := Butterworth(2)
	f := LowpassToBandstop(proto, 1, 0.2)

	if len(f.Zeros) != 4 || len(f.Poles) != 4 {
		t.Fatalf("got %d zeros, %d poles", len(f.Zeros), len(f.Poles))
	}

	if g := cmplx.Abs(f.Response(1i)); g > 1e-12 {
		t.Fatalf("notch gain %v, want 0", g)
	}

	if g := cmplx.Abs(f.Response(0)); math.Abs(g-1) > 1e-12 {
		t.Fatalf("DC gain %v, want 1", g)
	}
}

func TestBilinearMapsAxis(t *testing.T) {
	proto, _ := Butterworth(4)
	analog := LowpassToLowpass(proto, 1.5)
	digital := Bilinear(analog, 2)

	if !digital.stable() {
		t.Fatal("bilinear transform of a stable filter must be stable")
	}

	for _, w := range []float64{0.1, 0.3, 0.7} {
		// s = j*2*fs*tan(w/2) maps to z = e^{jw}.
		s := complex(0, 4*math.Tan(w/2))
		z := cmplx.Exp(complex(0, w))

		if diff := cmplx.Abs(digital.Response(z) - analog.Response(s)); diff > 1e-12 {
			t.Fatalf("w=%v: digital and analog responses differ by %v", w, diff)
		}
	}
}

func TestTransferFunctionExpandsGain(t *testing.T) {
	f := ZPK{Zeros: []complex128{-1}, Poles: []complex128{0.5}, Gain: 2}
	tf := f.TransferFunction()

	if len(tf.B) != 2 || tf.B[0] != 2 || tf.B[1] != 2 {
		t.Fatalf("B=%v, want [2 2]", tf.B)
	}

	if len(tf.A) != 2 || tf.A[0] != 1 || tf.A[1] != -0.5 {
		t.Fatalf("A=%v, want [1 -0.5]", tf.A)
	}

	if tf.Order() != 1 {
		t.Fatalf("order=%d, want 1", tf.Order())
	}
}
