package firdes

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
	"github.com/cwbudde/algo-filterdesign/dsp/window"
	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

const fs = 32000.0

var hamming = Window{Type: window.TypeHamming}

func magDB[T fir.Sample](taps []T, freq float64) float64 {
	return fir.New(taps).MagnitudeDB(freq, fs)
}

func requireSymmetric(t *testing.T, taps []float64) {
	t.Helper()

	for i := range taps {
		if math.Abs(taps[i]-taps[len(taps)-1-i]) > 1e-12 {
			t.Fatalf("taps not symmetric at %d: %v vs %v", i, taps[i], taps[len(taps)-1-i])
		}
	}
}

func TestNumTaps(t *testing.T) {
	tests := []struct {
		tw, atten float64
		want      int
	}{
		{2000, 40, 29},
		{1000, 40, 59},
		{2000, 53, 39},
		{8000, 22, 5},
	}

	for _, tt := range tests {
		got, err := NumTaps(fs, tt.tw, tt.atten)
		if err != nil {
			t.Fatal(err)
		}

		if got != tt.want {
			t.Errorf("NumTaps(tw=%v, atten=%v)=%d, want %d", tt.tw, tt.atten, got, tt.want)
		}
	}
}

func TestNumTapsRejectsBadInput(t *testing.T) {
	if _, err := NumTaps(0, 1000, 40); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("fs=0: err=%v", err)
	}

	if _, err := NumTaps(fs, 0, 40); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("tw=0: err=%v", err)
	}

	if _, err := NumTaps(fs, 1000, -1); !errors.Is(err, ErrInvalidAttenuation) {
		t.Fatalf("atten<0: err=%v", err)
	}
}

func TestLowPass(t *testing.T) {
	taps, err := LowPass(2, fs, 9000, 2000, 53, hamming)
	if err != nil {
		t.Fatal(err)
	}

	if len(taps) != 39 {
		t.Fatalf("len=%d, want 39", len(taps))
	}

	requireSymmetric(t, taps)
	testutil.RequireFinite(t, taps)

	sum := 0.0
	for _, v := range taps {
		sum += v
	}

	if math.Abs(sum-2) > 1e-12 {
		t.Fatalf("DC gain=%v, want 2", sum)
	}

	if db := magDB(taps, 9000+2000); db > 20*math.Log10(2)-45 {
		t.Fatalf("stopband %v dB not attenuated", db)
	}

	if db := magDB(taps, 9000); math.Abs(db-(20*math.Log10(2)-6)) > 0.5 {
		t.Fatalf("cutoff response %v dB, want ~-6 dB relative to gain", db)
	}
}

func TestHighPass(t *testing.T) {
	taps, err := HighPass(1, fs, 10000, 2000, 53, hamming)
	if err != nil {
		t.Fatal(err)
	}

	requireSymmetric(t, taps)

	if db := magDB(taps, fs/2); math.Abs(db) > 1e-9 {
		t.Fatalf("Nyquist gain %v dB, want 0", db)
	}

	if db := magDB(taps, 10000-2000); db > -45 {
		t.Fatalf("stopband %v dB not attenuated", db)
	}
}

func TestBandPass(t *testing.T) {
	taps, err := BandPass(1, fs, 6000, 10000, 1000, 53, hamming)
	if err != nil {
		t.Fatal(err)
	}

	requireSymmetric(t, taps)

	if db := magDB(taps, 8000); math.Abs(db) > 1e-9 {
		t.Fatalf("centre gain %v dB, want 0", db)
	}

	for _, f := range []float64{0, 4000, 12000} {
		if db := magDB(taps, f); db > -45 {
			t.Fatalf("stopband at %v Hz: %v dB", f, db)
		}
	}
}

func TestBandReject(t *testing.T) {
	taps, err := BandReject(1, fs, 6000, 10000, 1000, 53, hamming)
	if err != nil {
		t.Fatal(err)
	}

	requireSymmetric(t, taps)

	sum := 0.0
	for _, v := range taps {
		sum += v
	}

	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("DC gain=%v, want 1", sum)
	}

	if db := magDB(taps, 8000); db > -45 {
		t.Fatalf("notch centre %v dB", db)
	}

	if db := magDB(taps, 14000); math.Abs(db) > 0.1 {
		t.Fatalf("upper passband %v dB, want ~0", db)
	}
}

func TestComplexBandPass(t *testing.T) {
	taps, err := ComplexBandPass(1, fs, 4000, 8000, 1000, 53, hamming)
	if err != nil {
		t.Fatal(err)
	}

	if db := magDB(taps, 6000); math.Abs(db) > 1e-6 {
		t.Fatalf("centre gain %v dB, want 0", db)
	}

	if db := magDB(taps, -6000); db > -45 {
		t.Fatalf("mirror frequency %v dB, want rejected", db)
	}

	// Centre tap keeps zero phase.
	m := len(taps) / 2
	if math.Abs(imag(taps[m])) > 1e-12 || real(taps[m]) <= 0 {
		t.Fatalf("centre tap %v, want positive real", taps[m])
	}

	// Negative edges are allowed.
	neg, err := ComplexBandPass(1, fs, -8000, -4000, 1000, 53, hamming)
	if err != nil {
		t.Fatal(err)
	}

	if db := magDB(neg, -6000); math.Abs(db) > 1e-6 {
		t.Fatalf("negative band centre %v dB", db)
	}

	for i := range neg {
		if cmplx.Abs(neg[i]-cmplx.Conj(taps[i])) > 1e-12 {
			t.Fatalf("mirrored band should conjugate taps at %d", i)
		}
	}
}

func TestBandValidation(t *testing.T) {
	cases := []struct {
		name string
		fn   func() error
	}{
		{"lp above nyquist", func() error { _, err := LowPass(1, fs, 17000, 1000, 40, DefaultWindow); return err }},
		{"lp zero", func() error { _, err := LowPass(1, fs, 0, 1000, 40, DefaultWindow); return err }},
		{"hp negative", func() error { _, err := HighPass(1, fs, -1, 1000, 40, DefaultWindow); return err }},
		{"bp reversed", func() error { _, err := BandPass(1, fs, 9000, 8000, 1000, 40, DefaultWindow); return err }},
		{"br above nyquist", func() error { _, err := BandReject(1, fs, 8000, 20000, 1000, 40, DefaultWindow); return err }},
		{"cbp reversed", func() error { _, err := ComplexBandPass(1, fs, 1000, -1000, 100, 40, DefaultWindow); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.fn(); !errors.Is(err, ErrInvalidBand) {
				t.Fatalf("err=%v, want ErrInvalidBand", err)
			}
		})
	}
}

func TestRootRaisedCosine(t *testing.T) {
	taps, err := RootRaisedCosine(1, 32000, 8000, 0.35, 11)
	if err != nil {
		t.Fatal(err)
	}

	if len(taps) != 11 {
		t.Fatalf("len=%d, want 11", len(taps))
	}

	requireSymmetric(t, taps)
	testutil.RequireFinite(t, taps)

	sum := 0.0
	for _, v := range taps {
		sum += v
	}

	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("sum=%v, want 1", sum)
	}

	peak := 0
	for i, v := range taps {
		if v > taps[peak] {
			peak = i
		}
	}

	if peak != 5 {
		t.Fatalf("peak at %d, want centre 5", peak)
	}

	even, err := RootRaisedCosine(1, 32000, 8000, 0.35, 10)
	if err != nil {
		t.Fatal(err)
	}

	if len(even) != 11 {
		t.Fatalf("even ntaps forced to %d, want 11", len(even))
	}
}

func TestRootRaisedCosineSingularPoint(t *testing.T) {
	// spb=4, alpha=0.25 puts |4*alpha*x/spb| = 1 at x=4.
	taps, err := RootRaisedCosine(1, 4, 1, 0.25, 21)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, taps)
	requireSymmetric(t, taps)
}

func TestRootRaisedCosineValidation(t *testing.T) {
	if _, err := RootRaisedCosine(1, 32000, 8000, 0, 11); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("alpha=0: err=%v", err)
	}

	if _, err := RootRaisedCosine(1, 32000, 64000, 0.35, 11); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("srate>fs: err=%v", err)
	}

	if _, err := RootRaisedCosine(1, 32000, 8000, 0.35, 0); !errors.Is(err, ErrInvalidTaps) {
		t.Fatalf("ntaps=0: err=%v", err)
	}
}

func TestGaussian(t *testing.T) {
	taps, err := Gaussian(1, 16, 0.5, 11)
	if err != nil {
		t.Fatal(err)
	}

	if len(taps) != 11 {
		t.Fatalf("len=%d, want 11", len(taps))
	}

	sum := 0.0
	for _, v := range taps {
		if v <= 0 {
			t.Fatalf("gaussian taps must be positive, got %v", v)
		}

		sum += v
	}

	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("sum=%v, want 1", sum)
	}

	// Sample times run from -4.5 to 5.5 symbol-sample units, so the peak is
	// shared by indices 4 and 5.
	for i := 1; i <= 4; i++ {
		if taps[i] <= taps[i-1] {
			t.Fatalf("not rising before peak at %d", i)
		}
	}

	if taps[4] != taps[5] {
		t.Fatalf("peak taps differ: %v vs %v", taps[4], taps[5])
	}

	for i := 6; i < len(taps); i++ {
		if taps[i] >= taps[i-1] {
			t.Fatalf("not falling after peak at %d", i)
		}
	}

	if _, err := Gaussian(1, 16, 0, 11); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("bt=0: err=%v", err)
	}
}

func TestHalfBand(t *testing.T) {
	taps, err := HalfBand(1, fs, 2000, 53, hamming)
	if err != nil {
		t.Fatal(err)
	}

	if len(taps)%4 != 3 {
		t.Fatalf("len=%d, want 4k+3", len(taps))
	}

	requireSymmetric(t, taps)

	m := (len(taps) - 1) / 2
	for n := 2; n <= m; n += 2 {
		if taps[m+n] != 0 {
			t.Fatalf("tap at offset %d = %v, want 0", n, taps[m+n])
		}
	}

	if taps[0] == 0 {
		t.Fatal("outermost tap should be non-zero")
	}

	if math.Abs(taps[m]-0.5) > 0.01 {
		t.Fatalf("centre tap %v, want ~0.5", taps[m])
	}

	// Half-band symmetry: |H(f)|^2 + |H(fs/2-f)|^2 ~ const around fs/4 is
	// not exact for windowed designs; check the -6 dB point instead.
	if db := magDB(taps, fs/4); math.Abs(db+6.02) > 0.1 {
		t.Fatalf("response at fs/4 = %v dB, want -6 dB", db)
	}
}
