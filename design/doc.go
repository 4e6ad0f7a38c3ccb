// Package design holds the filter record model of the filter designer: a
// typed set of design parameters per filter kind, the coefficients they
// produce, and the label/code dictionaries shared by the CSV format and the
// command-line front-end.
//
// A [Record] is either an FIR record (one list of taps, real or complex) or
// an IIR record (numerator b and denominator a). Which one is decided by the
// kind of its [Params]:
//
//	r, _ := design.NewRecord(design.KindLowPass)
//	if err := r.Design(); err != nil {
//		// r is unchanged
//	}
//	fmt.Println(r.NumTaps())
//
// Coefficients are produced by the designers under dsp/filter: firdes for
// the window method, remez for equiripple and iirdes for IIR filters.
package design
