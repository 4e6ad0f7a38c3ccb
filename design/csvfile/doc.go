// Package csvfile reads and writes filter records in the comma-separated
// design file format of the GNU Radio filter designer.
//
// A file starts with a restype row, followed by one key,value row per
// design parameter and the coefficient rows:
//
//	restype,fir
//	filttype,lpf
//	fs,32000
//	...
//	taps,0.0012,-0.0034,...
//
// IIR files carry b and a rows instead of taps. Complex coefficients are
// written with a j imaginary suffix, such as (0.5-0.25j).
package csvfile
