package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-filterdesign/design"
	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

func runLabels(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "labels", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)

	for _, rt := range []design.Restype{design.RestypeFIR, design.RestypeIIR} {
		fmt.Fprintf(tw, "%s types\t\n", rt)

		for _, k := range design.Kinds(rt) {
			fmt.Fprintf(tw, "  %s\t%s\n", k.Label(), k.Code())
		}

		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "windows\t\n")

	for _, w := range design.Windows() {
		fmt.Fprintf(tw, "  %s\t%d\n", w.Label(), w.Code())
	}

	fmt.Fprintf(tw, "\nprototypes\t\n")

	for _, p := range design.Prototypes() {
		fmt.Fprintf(tw, "  %s\t%s\n", p.Label(), p.Code())
	}

	return tw.Flush()
}

func runWindows(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "windows", "")
	size := fs.Int("size", 1024, "window length in samples for the spectral columns")
	beta := fs.Float64("beta", window.DefaultBeta, "Kaiser window beta")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *size <= 0 {
		return fmt.Errorf("%w: -size must be positive", errConfig)
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tCode\tMax atten [dB]\tCoherent Gain\tENBW [bins]\tSidelobe [dB]\n")
	fmt.Fprintf(tw, "------\t----\t--------------\t-------------\t-----------\t-------------\n")

	for _, w := range design.Windows() {
		t, ok := w.Type()
		if !ok {
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\n", w.Label(), w.Code())
			continue
		}

		a := window.Analyze(window.Generate(t, *size, window.WithBeta(*beta)))
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.6f\t%.4f\t%.2f\n",
			w.Label(), w.Code(), window.MaxAttenuation(t, *beta),
			a.CoherentGain, a.ENBW, a.HighestSidelobedB)
	}

	return tw.Flush()
}
