// Package engnotation parses and formats numbers with SI suffixes, such as
// 8k, 1.5M or 100m.
package engnotation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrSyntax is returned for text that is not a number with an optional
// suffix.
var ErrSyntax = errors.New("engnotation: invalid number")

var suffixes = []struct {
	suffix string
	exp    int
}{
	{"E", 18}, {"P", 15}, {"T", 12}, {"G", 9}, {"M", 6}, {"k", 3},
	{"", 0},
	{"m", -3}, {"u", -6}, {"n", -9}, {"p", -12}, {"f", -15}, {"a", -18},
}

// Parse parses s as a float with an optional single-letter SI suffix. "K"
// is accepted for kilo.
func Parse(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("%w: empty", ErrSyntax)
	}

	if v, err := strconv.ParseFloat(t, 64); err == nil {
		return v, nil
	}

	last := t[len(t)-1:]
	if last == "K" {
		last = "k"
	}

	for _, e := range suffixes {
		if e.suffix == "" || e.suffix != last {
			continue
		}

		v, err := strconv.ParseFloat(t[:len(t)-1], 64)
		if err != nil {
			break
		}

		return v * math.Pow10(e.exp), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
}

// Format writes v with precision significant digits and the SI suffix that
// keeps the mantissa in [1, 1000).
func Format(v float64, precision int) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', precision, 64)
	}

	exp := int(math.Floor(math.Log10(math.Abs(v))/3)) * 3
	exp = max(-18, min(18, exp))

	m := v / math.Pow10(exp)
	// Rounding can carry the mantissa up to 1000.
	if r, _ := strconv.ParseFloat(strconv.FormatFloat(m, 'g', precision, 64), 64); math.Abs(r) >= 1000 && exp < 18 {
		exp += 3
		m = v / math.Pow10(exp)
	}

	for _, e := range suffixes {
		if e.exp == exp {
			return strconv.FormatFloat(m, 'g', precision, 64) + e.suffix
		}
	}

	return strconv.FormatFloat(v, 'g', precision, 64)
}

// Float is a float64 flag that accepts SI suffixes.
type Float float64

// Set implements flag.Value.
func (f *Float) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}

	*f = Float(v)

	return nil
}

func (f *Float) String() string {
	if f == nil {
		return "0"
	}

	return Format(float64(*f), 6)
}
