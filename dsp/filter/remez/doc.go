// Package remez designs linear-phase equiripple FIR filters with the
// Parks-McClellan exchange algorithm.
//
// [Design] is the raw exchange for symmetric (type I and II) filters with
// piecewise-linear desired amplitudes. [EstimateOrder] is Herrmann's order
// formula. [LowPass], [HighPass], [BandPass], [BandReject] and
// [ComplexBandPass] combine both the way GNU Radio's optfir does: passband
// ripple and stopband attenuation in dB are turned into band deviations,
// the order is estimated and a few extra taps are added for margin.
package remez
