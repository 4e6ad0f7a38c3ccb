// Package iirdes designs digital IIR filters from classical analog
// prototypes.
//
// The pipeline follows the usual four steps:
//
//  1. pick an order and natural frequency from passband/stopband edges
//     ([ButterworthOrder], [Chebyshev1Order], [Chebyshev2Order],
//     [EllipticOrder]),
//  2. build the normalized analog prototype as zeros, poles and gain
//     ([Butterworth], [Chebyshev1], [Chebyshev2], [Elliptic]),
//  3. map it to the requested band ([LowpassToLowpass],
//     [LowpassToHighpass], [LowpassToBandpass], [LowpassToBandstop]),
//  4. discretize with the bilinear transform ([Bilinear]).
//
// [Design] runs all four steps. Frequencies are normalized so that 1.0 is
// the Nyquist frequency, and gains are given in dB.
package iirdes
