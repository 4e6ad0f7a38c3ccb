package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"hz.tools/rf"

	"github.com/cwbudde/algo-filterdesign/design"
	"github.com/cwbudde/algo-filterdesign/design/csvfile"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/response"
)

func runShow(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "show", "file.csv")
	points := fs.Int("response", 0, "print the frequency response at this many frequencies")
	nfft := fs.Int("nfft", response.DefaultFFTSize, "FFT size for FIR responses")
	impulse := fs.Bool("impulse", false, "print the impulse and step responses")
	pz := fs.Bool("pz", false, "print the poles and zeros")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	rec, err := csvfile.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := printRecord(e.stdout, rec); err != nil {
		return err
	}

	if *points > 0 {
		if err := printResponse(e, rec, *points, *nfft); err != nil {
			return err
		}
	}

	if *impulse {
		if err := printTime(e.stdout, rec); err != nil {
			return err
		}
	}

	if *pz {
		return printPoleZero(e.stdout, rec)
	}

	return nil
}

func printRecord(w io.Writer, rec *design.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "restype\t%s\n", rec.Restype())
	fmt.Fprintf(tw, "type\t%s (%s)\n", rec.Kind().Label(), rec.Kind().Code())

	for _, p := range design.Values(rec.Params) {
		fmt.Fprintf(tw, "%s\t%s\n", p.Key, formatParam(rec, p))
	}

	for _, p := range rec.Extra {
		fmt.Fprintf(tw, "%s\t%s\t(not used)\n", p.Key, p.Value)
	}

	fmt.Fprintf(tw, "taps\t%d\n", rec.NumTaps())

	return tw.Flush()
}

// frequencyKeys are the FIR params given in Hz. IIR edges are normalized.
var frequencyKeys = map[string]bool{
	"fs": true, "pbstart": true, "pbend": true, "sbstart": true,
	"sbend": true, "tb": true, "srate": true,
}

func formatParam(rec *design.Record, p design.Param) string {
	v, ok := p.Value.Float()
	if !ok || rec.Restype() != design.RestypeFIR || !frequencyKeys[p.Key] {
		return p.Value.String()
	}

	return rf.Hz(v).String()
}

func sampleRate(rec *design.Record) float64 {
	for _, p := range design.Values(rec.Params) {
		if p.Key != "fs" {
			continue
		}

		if v, ok := p.Value.Float(); ok && v > 0 {
			return v
		}
	}

	return design.DefaultSampleRate
}

func frequencyResponse(rec *design.Record, nfft int) (response.Frequency, error) {
	switch {
	case rec.Restype() == design.RestypeIIR:
		return response.IIR(rec.B.Real(), rec.A.Real(), response.DefaultIIRPoints)
	case rec.Taps.IsComplex():
		return response.FIRComplex(rec.Taps.Complex(), sampleRate(rec), nfft)
	default:
		return response.FIRReal(rec.Taps.Real(), sampleRate(rec), nfft)
	}
}

func printResponse(e *env, rec *design.Record, points, nfft int) error {
	resp, err := frequencyResponse(rec, nfft)
	if errors.Is(err, response.ErrDegenerate) {
		e.log.Printf("warning: %v", err)
	} else if err != nil {
		return err
	}

	n := len(resp.Freq)
	if n == 0 {
		return nil
	}

	points = min(points, n)

	unit := "Hz"
	if rec.Restype() == design.RestypeIIR {
		unit = "x Nyquist"
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\nFrequency [%s]\tMagnitude [dB]\tPhase [rad]\tGroup delay\tPhase delay\t\n", unit)

	for i := range points {
		k := 0
		if points > 1 {
			k = i * (n - 1) / (points - 1)
		}

		fmt.Fprintf(tw, "%.6g\t%.3f\t%.4f\t%s\t%s\t\n",
			resp.Freq[k], resp.MagnitudeDB[k], resp.Phase[k],
			delayAt(resp.GroupDelay, k), delayAt(resp.PhaseDelay, k))
	}

	return tw.Flush()
}

// delayAt formats the delay nearest to bin k. Delays have one entry less
// than the frequency grid.
func delayAt(d []float64, k int) string {
	if len(d) == 0 {
		return "-"
	}

	return fmt.Sprintf("%.3f", d[min(k, len(d)-1)])
}

func printTime(w io.Writer, rec *design.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	if rec.Taps.IsComplex() {
		taps := rec.Taps.Complex()
		imp, step := response.ImpulseComplex(taps), response.StepComplex(taps)

		fmt.Fprintf(tw, "\nn\tImpulse\tStep\t\n")

		for i := range imp {
			fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t\n", i, imp[i], step[i])
		}

		return nil
	}

	b, a := rec.Taps.Real(), []float64(nil)
	if rec.Restype() == design.RestypeIIR {
		b, a = rec.B.Real(), rec.A.Real()
	}

	imp, err := response.Impulse(b, a, response.DefaultIIRLength)
	if err != nil {
		return err
	}

	step, err := response.Step(b, a, response.DefaultIIRLength)
	if err != nil {
		return err
	}

	fmt.Fprintf(tw, "\nn\tImpulse\tStep\t\n")

	for i := range imp {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t\n", i, imp[i], step[i])
	}

	return nil
}

func printPoleZero(w io.Writer, rec *design.Record) error {
	var (
		pz  response.PoleZero
		err error
	)

	switch {
	case rec.Restype() == design.RestypeIIR:
		pz, err = response.PoleZeros(rec.B.Real(), rec.A.Real())
	case rec.Taps.IsComplex():
		pz, err = response.PoleZerosComplex(rec.Taps.Complex())
	default:
		pz, err = response.PoleZeros(rec.Taps.Real(), nil)
	}

	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\ngain\t%.6g\n", pz.Gain)

	for _, z := range pz.Zeros {
		fmt.Fprintf(tw, "zero\t%.6g\n", z)
	}

	for _, p := range pz.Poles {
		fmt.Fprintf(tw, "pole\t%.6g\n", p)
	}

	return tw.Flush()
}
