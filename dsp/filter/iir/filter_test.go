package iir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func TestNewRejectsBadCoefficients(t *testing.T) {
	if _, err := New(nil, []float64{1}); !errors.Is(err, ErrEmptyCoefficients) {
		t.Fatalf("empty b: err=%v", err)
	}

	if _, err := New([]float64{1}, []float64{0, 1}); !errors.Is(err, ErrZeroLeading) {
		t.Fatalf("a[0]=0: err=%v", err)
	}
}

func TestOnePoleImpulseResponse(t *testing.T) {
	// y[n] = x[n] + 0.5 y[n-1]  ->  h[n] = 0.5^n
	f, err := New([]float64{1}, []float64{1, -0.5})
	if err != nil {
		t.Fatal(err)
	}

	got := f.ImpulseResponse(6)
	want := []float64{1, 0.5, 0.25, 0.125, 0.0625, 0.03125}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
}

func TestNormalizesByLeadingCoefficient(t *testing.T) {
	f1, _ := New([]float64{2, 0.4}, []float64{2, -1})
	f2, _ := New([]float64{1, 0.2}, []float64{1, -0.5})

	testutil.RequireSliceNearlyEqual(t, f1.ImpulseResponse(10), f2.ImpulseResponse(10), 1e-15)
}

func TestFIRSpecialCase(t *testing.T) {
	f, err := New([]float64{0.25, 0.5, 0.25}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, f.ImpulseResponse(4), []float64{0.25, 0.5, 0.25, 0}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, f.StepResponse(4), []float64{0.25, 0.75, 1, 1}, 1e-15)
}

func TestStepResponseSettlesToDCGain(t *testing.T) {
	b := []float64{0.2, 0.1}
	a := []float64{1, -0.6, 0.1}

	f, _ := New(b, a)
	step := f.StepResponse(200)

	dc := cmplx.Abs(f.Response(0, 1))
	if math.Abs(step[len(step)-1]-dc) > 1e-12 {
		t.Fatalf("step final=%v, want DC gain %v", step[len(step)-1], dc)
	}

	want := (0.2 + 0.1) / (1 - 0.6 + 0.1)
	if math.Abs(dc-want) > 1e-12 {
		t.Fatalf("DC gain=%v, want %v", dc, want)
	}
}

func TestResponseMatchesProcessing(t *testing.T) {
	f, _ := New([]float64{0.3, 0.2, 0.1}, []float64{1, -0.4, 0.2})

	const (
		sr   = 48000.0
		freq = 3000.0
		n    = 4096
	)

	x := testutil.DeterministicSine(freq, sr, 1, n)
	f.ProcessBlock(x)

	// Project the second half (a whole number of periods) onto sin and cos.
	w := 2 * math.Pi * freq / sr

	var s, c float64
	for i := n / 2; i < n; i++ {
		s += x[i] * math.Sin(w*float64(i))
		c += x[i] * math.Cos(w*float64(i))
	}

	amp := 2 * math.Hypot(s, c) / float64(n/2)

	want := cmplx.Abs(f.Response(freq, sr))
	if math.Abs(amp-want) > 1e-6 {
		t.Fatalf("steady-state amplitude=%v, want |H|=%v", amp, want)
	}
}

func TestResetClearsState(t *testing.T) {
	f, _ := New([]float64{1}, []float64{1, -0.9})
	f.ProcessSample(1)
	f.Reset()

	if y := f.ProcessSample(0); y != 0 {
		t.Fatalf("output after reset=%v, want 0", y)
	}

	if f.Order() != 1 {
		t.Fatalf("order=%d, want 1", f.Order())
	}
}
