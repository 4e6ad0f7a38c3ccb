package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The numeric values match the window
// constants used by GNU Radio's firdes so they can be stored in design files
// unchanged.
type Type int

const (
	TypeHamming Type = iota
	TypeHann
	TypeBlackman
	TypeRectangular
	TypeKaiser
	TypeBlackmanHarris
	TypeBartlett
	TypeFlatTop
)

// Metadata holds static properties of a window type.
type Metadata struct {
	Name string
	// Attenuation is the stopband attenuation in dB a windowed-sinc design
	// reaches with this window. Zero for Kaiser, whose attenuation depends on beta.
	Attenuation float64
}

var metadataByType = map[Type]Metadata{
	TypeHamming:        {Name: "Hamming", Attenuation: 53},
	TypeHann:           {Name: "Hann", Attenuation: 44},
	TypeBlackman:       {Name: "Blackman", Attenuation: 74},
	TypeRectangular:    {Name: "Rectangular", Attenuation: 21},
	TypeKaiser:         {Name: "Kaiser"},
	TypeBlackmanHarris: {Name: "Blackman-harris", Attenuation: 92},
	TypeBartlett:       {Name: "Bartlett", Attenuation: 27},
	TypeFlatTop:        {Name: "Flat-top", Attenuation: 93},
}

var (
	hannCoeffs           = []float64{0.5, -0.5}
	hammingCoeffs        = []float64{0.54, -0.46}
	blackmanCoeffs       = []float64{0.42, -0.5, 0.08}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs        = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

// Types returns all window types in code order.
func Types() []Type {
	return []Type{
		TypeHamming,
		TypeHann,
		TypeBlackman,
		TypeRectangular,
		TypeKaiser,
		TypeBlackmanHarris,
		TypeBartlett,
		TypeFlatTop,
	}
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool {
	_, ok := metadataByType[t]
	return ok
}

func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return m.Name
	}

	return "Unknown"
}

// Option configures window generation.
type Option func(*config)

type config struct {
	beta     float64
	periodic bool
}

func defaultConfig() config {
	return config{beta: DefaultBeta}
}

// DefaultBeta is the Kaiser beta used when none is configured.
const DefaultBeta = 6.76

// WithBeta sets the Kaiser beta. Negative values are ignored.
func WithBeta(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.beta = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}

	return out
}

// New validates its arguments and returns window coefficients.
func New(t Type, size int, opts ...Option) ([]float64, error) {
	if err := validateType(t); err != nil {
		return nil, err
	}

	if err := validateLength(size); err != nil {
		return nil, err
	}

	return Generate(t, size, opts...), nil
}

// Kaiser returns Kaiser window coefficients.
func Kaiser(size int, beta float64, opts ...Option) ([]float64, error) {
	if err := validateKaiser(size, beta); err != nil {
		return nil, err
	}

	return Generate(TypeKaiser, size, append(opts, WithBeta(beta))...), nil
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// MaxAttenuation returns the stopband attenuation in dB that a windowed-sinc
// filter designed with t reaches. beta is only used for [TypeKaiser].
func MaxAttenuation(t Type, beta float64) float64 {
	if t == TypeKaiser {
		return beta/0.1102 + 8.7
	}

	return metadataByType[t].Attenuation
}

// KaiserBeta returns the Kaiser beta that reaches the given stopband
// attenuation in dB (Kaiser's empirical formula).
func KaiserBeta(attenuationDB float64) float64 {
	switch {
	case attenuationDB > 50:
		return 0.1102 * (attenuationDB - 8.7)
	case attenuationDB >= 21:
		d := attenuationDB - 21
		return 0.5842*math.Pow(d, 0.4) + 0.07886*d
	default:
		return 0
	}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum, sumSquares := 0.0, 0.0
	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	case TypeKaiser:
		return kaiserAt(x, cfg.beta)
	case TypeBartlett:
		return 1 - math.Abs(2*x-1)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
