package remez

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

const fs = 32000.0

func mag[T fir.Sample](taps []T, freq, rate float64) float64 {
	return math.Pow(10, fir.New(taps).MagnitudeDB(freq, rate)/20)
}

// maxOver returns the largest value of fn over [lo, hi] sampled every step.
func maxOver(lo, hi, step float64, fn func(f float64) float64) float64 {
	peak := 0.0
	for f := lo; f <= hi; f += step {
		peak = math.Max(peak, fn(f))
	}

	return peak
}

func requireSymmetric(t *testing.T, taps []float64) {
	t.Helper()

	for i := range taps {
		if math.Abs(taps[i]-taps[len(taps)-1-i]) > 1e-12 {
			t.Fatalf("taps not symmetric at %d: %v vs %v", i, taps[i], taps[len(taps)-1-i])
		}
	}
}

func TestDesignEquiripple(t *testing.T) {
	// Equal weights give equal peak error in both bands.
	h, err := Design(25, []float64{0, 0.4, 0.5, 1}, []float64{1, 1, 0, 0}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}

	requireSymmetric(t, h)
	testutil.RequireFinite(t, h)

	pass := maxOver(0, 400, 1, func(f float64) float64 { return math.Abs(mag(h, f, 2000) - 1) })
	stop := maxOver(500, 1000, 1, func(f float64) float64 { return mag(h, f, 2000) })

	if pass > 0.05 || stop > 0.05 {
		t.Fatalf("deviations too large: pass=%v stop=%v", pass, stop)
	}

	if math.Abs(pass-stop)/stop > 0.05 {
		t.Fatalf("deviations not equiripple: pass=%v stop=%v", pass, stop)
	}
}

func TestDesignEvenLength(t *testing.T) {
	h, err := Design(24, []float64{0, 0.4, 0.5, 1}, []float64{1, 1, 0, 0}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(h) != 24 {
		t.Fatalf("len=%d, want 24", len(h))
	}

	requireSymmetric(t, h)

	if v := mag(h, 1000, 2000); v > 1e-12 {
		t.Fatalf("type II filter must vanish at Nyquist, got %v", v)
	}

	stop := maxOver(500, 1000, 1, func(f float64) float64 { return mag(h, f, 2000) })
	if stop > 0.06 {
		t.Fatalf("stopband deviation %v", stop)
	}
}

func TestDesignValidation(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		bands   []float64
		desired []float64
		weights []float64
		want    error
	}{
		{"too short", 2, []float64{0, 0.4, 0.5, 1}, []float64{1, 1, 0, 0}, []float64{1, 1}, ErrInvalidTaps},
		{"odd edges", 11, []float64{0, 0.4, 0.5}, []float64{1, 1, 0}, []float64{1, 1}, ErrInvalidBands},
		{"desired count", 11, []float64{0, 0.4, 0.5, 1}, []float64{1, 0}, []float64{1, 1}, ErrInvalidBands},
		{"weight count", 11, []float64{0, 0.4, 0.5, 1}, []float64{1, 1, 0, 0}, []float64{1}, ErrInvalidBands},
		{"descending", 11, []float64{0, 0.5, 0.4, 1}, []float64{1, 1, 0, 0}, []float64{1, 1}, ErrInvalidBands},
		{"above nyquist", 11, []float64{0, 0.4, 0.5, 1.2}, []float64{1, 1, 0, 0}, []float64{1, 1}, ErrInvalidBands},
		{"zero weight", 11, []float64{0, 0.4, 0.5, 1}, []float64{1, 1, 0, 0}, []float64{1, 0}, ErrInvalidBands},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Design(tt.n, tt.bands, tt.desired, tt.weights); !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestDesignOptions(t *testing.T) {
	bands, desired, weights := []float64{0, 0.4, 0.5, 1}, []float64{1, 1, 0, 0}, []float64{1, 1}

	if _, err := Design(25, bands, desired, weights, WithGridDensity(1)); !errors.Is(err, ErrTooFewExtrema) {
		t.Fatalf("grid density 1: err=%v, want %v", err, ErrTooFewExtrema)
	}

	if _, err := Design(25, bands, desired, weights, WithMaxIterations(1)); !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("one iteration: err=%v, want %v", err, ErrNoConvergence)
	}

	// Non-positive values keep the defaults.
	h, err := Design(25, bands, desired, weights, WithGridDensity(0), WithMaxIterations(-1), nil)
	if err != nil {
		t.Fatal(err)
	}

	want, err := Design(25, bands, desired, weights)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, h, want, 0)

	dense, err := Design(25, bands, desired, weights, WithGridDensity(64))
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, dense, want, 5e-3)
}

func TestDeviationConversions(t *testing.T) {
	if d := StopbandDeviation(40); math.Abs(d-0.01) > 1e-15 {
		t.Fatalf("StopbandDeviation(40)=%v, want 0.01", d)
	}

	if d := PassbandDeviation(0.1); math.Abs(d-0.0057563991496219) > 1e-12 {
		t.Fatalf("PassbandDeviation(0.1)=%v", d)
	}
}

func TestEstimateOrder(t *testing.T) {
	spec, err := EstimateOrder(
		[]float64{8000, 10000},
		[]float64{1, 0},
		[]float64{PassbandDeviation(0.1), StopbandDeviation(40)},
		fs,
	)
	if err != nil {
		t.Fatal(err)
	}

	if spec.Order != 34 {
		t.Fatalf("order=%d, want 34", spec.Order)
	}

	testutil.RequireSliceNearlyEqual(t, spec.Bands, []float64{0, 0.5, 0.625, 1}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, spec.Desired, []float64{1, 1, 0, 0}, 0)
	testutil.RequireSliceNearlyEqual(t, spec.Weights, []float64{0.01 / PassbandDeviation(0.1), 1}, 1e-12)
}

func TestEstimateOrderValidation(t *testing.T) {
	if _, err := EstimateOrder([]float64{1000}, []float64{1, 0}, []float64{0.1, 0.1}, fs); !errors.Is(err, ErrInvalidBands) {
		t.Fatalf("cut count: err=%v", err)
	}

	if _, err := EstimateOrder([]float64{2000, 1000}, []float64{1, 0}, []float64{0.1, 0.1}, fs); !errors.Is(err, ErrInvalidBands) {
		t.Fatalf("reversed cuts: err=%v", err)
	}

	if _, err := EstimateOrder([]float64{1000, 20000}, []float64{1, 0}, []float64{0.1, 0.1}, fs); !errors.Is(err, ErrInvalidBands) {
		t.Fatalf("above nyquist: err=%v", err)
	}
}

func TestLowPass(t *testing.T) {
	h, err := LowPass(1, fs, 8000, 10000, 0.1, 40)
	if err != nil {
		t.Fatal(err)
	}

	if len(h) != 37 {
		t.Fatalf("len=%d, want 37", len(h))
	}

	requireSymmetric(t, h)

	pass := maxOver(0, 8000, 50, func(f float64) float64 { return math.Abs(mag(h, f, fs) - 1) })
	if pass > PassbandDeviation(0.1) {
		t.Fatalf("passband deviation %v exceeds spec", pass)
	}

	stop := maxOver(10000, fs/2, 50, func(f float64) float64 { return mag(h, f, fs) })
	if stop > StopbandDeviation(40) {
		t.Fatalf("stopband %v dB exceeds spec", 20*math.Log10(stop))
	}
}

func TestLowPassRetriesWithoutConvergence(t *testing.T) {
	h, err := LowPass(1, fs, 8000, 10000, 0.1, 40, WithMaxIterations(1))
	if err != nil {
		t.Fatal(err)
	}

	if len(h) != 37 {
		t.Fatalf("len=%d, want 37", len(h))
	}

	stop := maxOver(10000, fs/2, 50, func(f float64) float64 { return mag(h, f, fs) })
	if stop > StopbandDeviation(40) {
		t.Fatalf("stopband %v dB exceeds spec", 20*math.Log10(stop))
	}
}

func TestLowPassGainScalesPassband(t *testing.T) {
	h, err := LowPass(2, fs, 8000, 10000, 0.1, 40)
	if err != nil {
		t.Fatal(err)
	}

	if v := mag(h, 0, fs); math.Abs(v-2) > 0.02 {
		t.Fatalf("DC gain %v, want ~2", v)
	}
}

func TestHighPass(t *testing.T) {
	h, err := HighPass(1, fs, 8000, 10000, 0.1, 40)
	if err != nil {
		t.Fatal(err)
	}

	if len(h)%2 != 1 {
		t.Fatalf("high-pass must have odd length, got %d", len(h))
	}

	requireSymmetric(t, h)

	stop := maxOver(0, 8000, 50, func(f float64) float64 { return mag(h, f, fs) })
	if stop > StopbandDeviation(40) {
		t.Fatalf("stopband %v dB exceeds spec", 20*math.Log10(stop))
	}

	pass := maxOver(10000, fs/2, 50, func(f float64) float64 { return math.Abs(mag(h, f, fs) - 1) })
	if pass > 0.01 {
		t.Fatalf("passband deviation %v", pass)
	}
}

func TestBandPass(t *testing.T) {
	h, err := BandPass(1, fs, 7000, 8000, 10000, 11000, 0.1, 40)
	if err != nil {
		t.Fatal(err)
	}

	requireSymmetric(t, h)

	pass := maxOver(8000, 10000, 50, func(f float64) float64 { return math.Abs(mag(h, f, fs) - 1) })
	if pass > 0.01 {
		t.Fatalf("passband deviation %v", pass)
	}

	stop := math.Max(
		maxOver(0, 7000, 50, func(f float64) float64 { return mag(h, f, fs) }),
		maxOver(11000, fs/2, 50, func(f float64) float64 { return mag(h, f, fs) }),
	)
	if db := 20 * math.Log10(stop); db > -37 {
		t.Fatalf("stopband %v dB", db)
	}
}

func TestBandReject(t *testing.T) {
	h, err := BandReject(1, fs, 8000, 9000, 10000, 11000, 0.1, 40)
	if err != nil {
		t.Fatal(err)
	}

	if len(h)%2 != 1 {
		t.Fatalf("band-reject must have odd length, got %d", len(h))
	}

	stop := maxOver(9000, 10000, 50, func(f float64) float64 { return mag(h, f, fs) })
	if db := 20 * math.Log10(stop); db > -37 {
		t.Fatalf("stopband %v dB", db)
	}

	pass := math.Max(
		maxOver(0, 8000, 50, func(f float64) float64 { return math.Abs(mag(h, f, fs) - 1) }),
		maxOver(11000, fs/2, 50, func(f float64) float64 { return math.Abs(mag(h, f, fs) - 1) }),
	)
	if pass > 0.01 {
		t.Fatalf("passband deviation %v", pass)
	}
}

func TestComplexBandPass(t *testing.T) {
	h, err := ComplexBandPass(1, fs, 7000, 8000, 10000, 11000, 0.1, 40)
	if err != nil {
		t.Fatal(err)
	}

	if v := mag(h, 9000, fs); math.Abs(v-1) > 0.01 {
		t.Fatalf("centre gain %v, want ~1", v)
	}

	if v := mag(h, -9000, fs); 20*math.Log10(v) > -38 {
		t.Fatalf("mirror frequency %v dB, want rejected", 20*math.Log10(v))
	}

	if _, err := ComplexBandPass(1, fs, 8000, 7000, 10000, 11000, 0.1, 40); !errors.Is(err, ErrInvalidBands) {
		t.Fatalf("unordered edges: err=%v", err)
	}
}
