package remez

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidBands is returned for malformed band, desired or weight slices.
	ErrInvalidBands = errors.New("remez: invalid band specification")
	// ErrInvalidTaps is returned for a tap count below 3.
	ErrInvalidTaps = errors.New("remez: number of taps must be >= 3")
	// ErrNoConvergence is returned when the exchange does not settle.
	ErrNoConvergence = errors.New("remez: failed to converge")
	// ErrTooFewExtrema is returned when the error curve has too few extrema,
	// usually because the grid is too coarse for the requested length.
	ErrTooFewExtrema = errors.New("remez: too few extremal frequencies")
)

const (
	defaultGridDensity   = 16
	defaultMaxIterations = 40
	convergenceTol       = 1e-4
)

// Option configures [Design].
type Option func(*config)

type config struct {
	gridDensity   int
	maxIterations int
}

// WithGridDensity sets the dense grid density per extremal frequency.
func WithGridDensity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.gridDensity = n
		}
	}
}

// WithMaxIterations bounds the number of exchange iterations.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// Design returns numTaps symmetric FIR coefficients minimising the weighted
// Chebyshev error.
//
// bands holds band edge pairs normalized so that 1 is Nyquist, ascending and
// non-overlapping. desired holds the amplitude at each band edge (two per
// band) and is interpolated linearly inside a band. weights holds one weight
// per band.
func Design(numTaps int, bands, desired, weights []float64, opts ...Option) ([]float64, error) {
	cfg := config{gridDensity: defaultGridDensity, maxIterations: defaultMaxIterations}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if numTaps < 3 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaps, numTaps)
	}

	if err := validateBands(bands, desired, weights); err != nil {
		return nil, err
	}

	r := numTaps / 2
	if numTaps%2 == 1 {
		r++
	}

	g := newGrid(r, numTaps, bands, desired, weights, cfg.gridDensity)
	if len(g.freq) <= r {
		return nil, fmt.Errorf("%w: grid of %d points for %d extrema", ErrTooFewExtrema, len(g.freq), r+1)
	}

	// Type II filters have a forced zero at Nyquist: design Q(w)=A(w)/cos(w/2).
	if numTaps%2 == 0 {
		for i, f := range g.freq {
			c := math.Cos(math.Pi * f)
			g.des[i] /= c
			g.wt[i] *= c
		}
	}

	ext := make([]int, r+1)
	for i := range ext {
		ext[i] = i * (len(g.freq) - 1) / r
	}

	s := newSolver(r)
	errs := make([]float64, len(g.freq))
	converged := false

	for range cfg.maxIterations {
		s.calcParms(ext, g)

		for i, f := range g.freq {
			errs[i] = g.wt[i] * (g.des[i] - s.computeA(f))
		}

		if err := search(r, ext, errs); err != nil {
			return nil, err
		}

		if done(ext, errs) {
			converged = true
			break
		}
	}

	if !converged {
		return nil, fmt.Errorf("%w after %d iterations", ErrNoConvergence, cfg.maxIterations)
	}

	s.calcParms(ext, g)

	// Sample the amplitude response at k/numTaps and invert.
	a := make([]float64, numTaps/2+1)
	for i := range a {
		c := 1.0
		if numTaps%2 == 0 {
			c = math.Cos(math.Pi * float64(i) / float64(numTaps))
		}

		a[i] = s.computeA(float64(i)/float64(numTaps)) * c
	}

	return freqSample(numTaps, a), nil
}

func validateBands(bands, desired, weights []float64) error {
	if len(bands) < 2 || len(bands)%2 != 0 {
		return fmt.Errorf("%w: %d band edges", ErrInvalidBands, len(bands))
	}

	if len(desired) != len(bands) {
		return fmt.Errorf("%w: %d desired amplitudes for %d edges", ErrInvalidBands, len(desired), len(bands))
	}

	if len(weights) != len(bands)/2 {
		return fmt.Errorf("%w: %d weights for %d bands", ErrInvalidBands, len(weights), len(bands)/2)
	}

	for i, b := range bands {
		if b < 0 || b > 1 || (i > 0 && b < bands[i-1]) {
			return fmt.Errorf("%w: edge %g at %d", ErrInvalidBands, b, i)
		}
	}

	for i, w := range weights {
		if !(w > 0) {
			return fmt.Errorf("%w: weight %g for band %d", ErrInvalidBands, w, i)
		}
	}

	return nil
}

// grid is the dense frequency grid in cycles/sample (0..0.5) with desired
// response and weight at each point.
type grid struct {
	freq, des, wt []float64
}

func newGrid(r, numTaps int, bands, desired, weights []float64, density int) grid {
	delf := 0.5 / float64(density*r)

	var g grid

	for b := 0; b < len(bands)/2; b++ {
		lo, hi := bands[2*b]/2, bands[2*b+1]/2

		k := max(int((hi-lo)/delf+0.5), 1)
		for i := range k {
			f := lo + float64(i)*delf
			if i == k-1 {
				f = hi
			}

			d := desired[2*b]
			if hi > lo {
				d += (desired[2*b+1] - desired[2*b]) * (f - lo) / (hi - lo)
			}

			g.freq = append(g.freq, f)
			g.des = append(g.des, d)
			g.wt = append(g.wt, weights[b])
		}
	}

	if numTaps%2 == 0 {
		if last := len(g.freq) - 1; g.freq[last] > 0.5-delf {
			g.freq[last] = 0.5 - delf
		}
	}

	return g
}

// solver holds the barycentric Lagrange interpolation state.
type solver struct {
	r        int
	ad, x, y []float64
}

func newSolver(r int) *solver {
	return &solver{
		r:  r,
		ad: make([]float64, r+1),
		x:  make([]float64, r+1),
		y:  make([]float64, r+1),
	}
}

func (s *solver) calcParms(ext []int, g grid) {
	r := s.r
	for i := 0; i <= r; i++ {
		s.x[i] = math.Cos(2 * math.Pi * g.freq[ext[i]])
	}

	// Products are split into interleaved groups to limit over/underflow.
	ld := (r-1)/15 + 1
	for i := 0; i <= r; i++ {
		denom := 1.0
		xi := s.x[i]

		for j := range ld {
			for k := j; k <= r; k += ld {
				if k != i {
					denom *= 2.0 * (xi - s.x[k])
				}
			}
		}

		if math.Abs(denom) < 1e-5 {
			denom = 1e-5
		}

		s.ad[i] = 1.0 / denom
	}

	numer, denom := 0.0, 0.0
	sign := 1.0

	for i := 0; i <= r; i++ {
		numer += s.ad[i] * g.des[ext[i]]
		denom += sign * s.ad[i] / g.wt[ext[i]]
		sign = -sign
	}

	delta := numer / denom
	sign = 1

	for i := 0; i <= r; i++ {
		s.y[i] = g.des[ext[i]] - sign*delta/g.wt[ext[i]]
		sign = -sign
	}
}

func (s *solver) computeA(freq float64) float64 {
	xc := math.Cos(2 * math.Pi * freq)
	numer, denom := 0.0, 0.0

	for i := 0; i <= s.r; i++ {
		c := xc - s.x[i]
		if math.Abs(c) < 1e-7 {
			return s.y[i]
		}

		c = s.ad[i] / c
		denom += c
		numer += c * s.y[i]
	}

	return numer / denom
}

// search locates the local extrema of the error curve and keeps the r+1
// that alternate in sign with the largest magnitudes.
func search(r int, ext []int, e []float64) error {
	n := len(e)
	found := make([]int, 0, 2*r)

	if (e[0] > 0 && e[0] > e[1]) || (e[0] < 0 && e[0] < e[1]) {
		found = append(found, 0)
	}

	for i := 1; i < n-1; i++ {
		if (e[i] >= e[i-1] && e[i] > e[i+1] && e[i] > 0) ||
			(e[i] <= e[i-1] && e[i] < e[i+1] && e[i] < 0) {
			found = append(found, i)
		}
	}

	j := n - 1
	if (e[j] > 0 && e[j] > e[j-1]) || (e[j] < 0 && e[j] < e[j-1]) {
		found = append(found, j)
	}

	if len(found) < r+1 {
		return fmt.Errorf("%w: found %d, need %d", ErrTooFewExtrema, len(found), r+1)
	}

	for extra := len(found) - (r + 1); extra > 0; extra-- {
		up := e[found[0]] > 0
		l := 0
		alternating := true

		for j := 1; j < len(found); j++ {
			if math.Abs(e[found[j]]) < math.Abs(e[found[l]]) {
				l = j
			}

			switch {
			case up && e[found[j]] < 0:
				up = false
			case !up && e[found[j]] > 0:
				up = true
			default:
				// Two neighbours of equal sign: drop the smaller one.
				alternating = false

				if math.Abs(e[found[j]]) > math.Abs(e[found[j-1]]) {
					l = j - 1
				} else {
					l = j
				}
			}

			if !alternating {
				break
			}
		}

		if alternating && extra == 1 {
			if math.Abs(e[found[len(found)-1]]) < math.Abs(e[found[0]]) {
				l = len(found) - 1
			} else {
				l = 0
			}
		}

		found = append(found[:l], found[l+1:]...)
	}

	copy(ext, found[:r+1])

	return nil
}

func done(ext []int, e []float64) bool {
	lo, hi := math.Inf(1), 0.0
	for _, i := range ext {
		v := math.Abs(e[i])
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return hi == 0 || (hi-lo)/hi < convergenceTol
}

// freqSample recovers the symmetric impulse response from amplitude samples
// a[k] = A(k/n).
func freqSample(n int, a []float64) []float64 {
	m := float64(n-1) / 2
	h := make([]float64, n)

	last := n / 2
	if n%2 == 0 {
		last = n/2 - 1
	}

	for i := range h {
		val := a[0]
		x := 2 * math.Pi * (float64(i) - m) / float64(n)

		for k := 1; k <= last; k++ {
			val += 2 * a[k] * math.Cos(x*float64(k))
		}

		h[i] = val / float64(n)
	}

	return h
}
