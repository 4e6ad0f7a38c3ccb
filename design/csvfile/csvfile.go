package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-filterdesign/design"
)

// Row keys with a fixed meaning. Every other key is a design parameter.
const (
	keyRestype = "restype"
	keyTaps    = "taps"
	keyB       = "b"
	keyA       = "a"
)

// Write writes r in design file format. r must be a valid, designed record.
func Write(w io.Writer, r *design.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("csvfile: %w", err)
	}

	cw := csv.NewWriter(w)

	rows := [][]string{{keyRestype, string(r.Restype())}}
	for _, p := range design.Values(r.Params) {
		rows = append(rows, []string{p.Key, p.Value.String()})
	}

	for _, p := range r.Extra {
		rows = append(rows, []string{p.Key, p.Value.String()})
	}

	if r.Restype() == design.RestypeIIR {
		rows = append(rows, coefficientRow(keyB, r.B), coefficientRow(keyA, r.A))
	} else {
		rows = append(rows, coefficientRow(keyTaps, r.Taps))
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("csvfile: %w", err)
	}

	return nil
}

// Save writes r to path. Nothing is written when r is invalid.
func Save(path string, r *design.Record) error {
	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return nil
}

// Load reads a record from path.
func Load(path string) (*design.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	r, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

// Read parses a design file. Rows are dispatched on their first field, so
// their order does not matter. Parameters that are not part of the filter
// kind end up in Record.Extra.
func Read(rd io.Reader) (*design.Record, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvfile: %w", err)
	}

	var (
		restype design.Restype
		params  []design.Param
		taps    *design.Coefficients
		b, a    *design.Coefficients
	)

	for i, row := range rows {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		key := strings.TrimSpace(row[0])

		switch key {
		case keyRestype:
			if len(row) < 2 {
				return nil, fmt.Errorf("%w: empty restype on line %d", ErrMissingRestype, i+1)
			}

			restype = design.Restype(strings.TrimSpace(row[1]))
			if !restype.Valid() {
				return nil, fmt.Errorf("%w: %q", ErrUnknownRestype, row[1])
			}
		case keyTaps, keyB, keyA:
			c, err := parseCoefficients(row[1:])
			if err != nil {
				return nil, fmt.Errorf("%s row on line %d: %w", key, i+1, err)
			}

			switch key {
			case keyTaps:
				taps = &c
			case keyB:
				b = &c
			default:
				a = &c
			}
		default:
			// Unquoted lists such as [0.2, 0.35] arrive split over fields.
			params = append(params, design.Param{
				Key:   key,
				Value: design.ParseValue(strings.Join(row[1:], ",")),
			})
		}
	}

	if restype == "" {
		return nil, ErrMissingRestype
	}

	p, extra, err := design.ParamsFromValues(restype, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownKind, err)
	}

	rec := &design.Record{Params: p, Extra: extra}

	if restype == design.RestypeIIR {
		if b == nil || a == nil || b.Len() == 0 || a.Len() == 0 {
			return nil, fmt.Errorf("%w: iir file needs b and a rows", ErrMissingCoefficients)
		}

		if b.IsComplex() || a.IsComplex() {
			return nil, fmt.Errorf("%w: complex iir coefficients", ErrMalformedCoefficient)
		}

		rec.B, rec.A = *b, *a
	} else {
		if taps == nil || taps.Len() == 0 {
			return nil, fmt.Errorf("%w: fir file needs a taps row", ErrMissingCoefficients)
		}

		rec.Taps = *taps
	}

	return rec, nil
}

func coefficientRow(key string, c design.Coefficients) []string {
	row := make([]string, 0, c.Len()+1)
	row = append(row, key)

	if c.IsComplex() {
		for _, v := range c.Complex() {
			row = append(row, formatComplex(v))
		}

		return row
	}

	for _, v := range c.Real() {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}

	return row
}

// complexField matches a number ending in an imaginary unit, such as 2j,
// (1-0.5j) or 3i.
var complexField = regexp.MustCompile(`[0-9.][ji]\)?$`)

// parseCoefficients parses one coefficient row. The list is complex if any
// field is written with an imaginary unit. Trailing empty fields are
// ignored.
func parseCoefficients(fields []string) (design.Coefficients, error) {
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = strings.TrimSpace(f)
	}

	for len(values) > 0 && values[len(values)-1] == "" {
		values = values[:len(values)-1]
	}

	isComplex := false
	for i, f := range values {
		if f == "" {
			return design.Coefficients{}, fmt.Errorf("%w: empty field %d", ErrMalformedCoefficient, i+1)
		}

		if complexField.MatchString(f) {
			isComplex = true
		}
	}

	if isComplex {
		out := make([]complex128, len(values))
		for i, f := range values {
			v, err := parseComplex(f)
			if err != nil {
				return design.Coefficients{}, fmt.Errorf("%w: %q", ErrMalformedCoefficient, f)
			}

			out[i] = v
		}

		return design.ComplexCoefficients(out), nil
	}

	out := make([]float64, len(values))
	for i, f := range values {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return design.Coefficients{}, fmt.Errorf("%w: %q", ErrMalformedCoefficient, f)
		}

		out[i] = v
	}

	return design.RealCoefficients(out), nil
}

// formatComplex writes v in parenthesised j-suffix form, e.g. (1-2j).
func formatComplex(v complex128) string {
	s := strconv.FormatComplex(v, 'g', -1, 128)
	return strings.TrimSuffix(s, "i)") + "j)"
}

func parseComplex(s string) (complex128, error) {
	return strconv.ParseComplex(strings.ReplaceAll(s, "j", "i"), 128)
}
