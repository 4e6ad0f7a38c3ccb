// Package firdes designs FIR filters with the window method and the common
// pulse-shaping filters.
//
// The designs follow GNU Radio's firdes: windowed-sinc low-pass, high-pass,
// band-pass and band-reject prototypes whose tap count is derived from the
// requested transition width and stopband attenuation, a frequency-shifted
// complex band-pass, root raised cosine and Gaussian pulses, and a windowed
// half-band low-pass.
//
// Frequencies are in Hz at the given sample rate. All tap sets are returned
// with gain applied at the reference frequency of the response (DC for
// low-pass and band-reject, Nyquist for high-pass, the band centre for
// band-pass).
package firdes
