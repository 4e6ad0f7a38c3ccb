package design

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a scalar parameter value: a number or, when the text did not
// parse as one, a string.
type Value struct {
	num   float64
	str   string
	isNum bool
}

// Number returns a numeric value.
func Number(v float64) Value { return Value{num: v, isNum: true} }

// Text returns a string value.
func Text(s string) Value { return Value{str: s} }

// Pair returns a band edge pair value as stored for IIR band-pass and
// band-stop edges.
func Pair(lo, hi float64) Value { return Text(formatPair([2]float64{lo, hi})) }

// ParseValue parses s as a number and falls back to a string value.
func ParseValue(s string) Value {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Number(v)
	}

	return Text(s)
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.isNum }

// Float returns the numeric value of v.
func (v Value) Float() (float64, bool) { return v.num, v.isNum }

// String returns the text form of v. Numbers use the shortest form that
// parses back to the same float64.
func (v Value) String() string {
	if v.isNum {
		return formatFloat(v.num)
	}

	return v.str
}

// Param is one key/value design parameter as stored in a design file.
type Param struct {
	Key   string
	Value Value
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatPair writes a band edge pair the way design files store them.
func formatPair(p [2]float64) string {
	return "[" + formatFloat(p[0]) + ", " + formatFloat(p[1]) + "]"
}

func parsePair(s string) ([2]float64, error) {
	var out [2]float64

	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "[") || !strings.HasSuffix(t, "]") {
		return out, fmt.Errorf("not a pair: %q", s)
	}

	parts := strings.Split(t[1:len(t)-1], ",")
	if len(parts) != 2 {
		return out, fmt.Errorf("pair needs 2 values: %q", s)
	}

	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("pair element %d: %w", i, err)
		}

		out[i] = v
	}

	return out, nil
}
