// Package simdops wraps the SIMD-accelerated float64 primitives used by the
// conversion hot paths (sinc convolution, gain application, RMS estimation).
// Keeping the wrapper in one place means the DSP code never imports the SIMD
// library directly and a pure-Go fallback only has to be swapped in here.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Dot computes the dot product of a and b without bounds checking.
// Both slices must have the same length.
func Dot(a, b []float64) float64 {
	return f64.DotProductUnsafe(a, b)
}

// Sum returns the sum of all elements of a.
func Sum(a []float64) float64 {
	return f64.Sum(a)
}

// Scale writes a[i] * s into dst. dst and a must have the same length.
func Scale(dst, a []float64, s float64) {
	f64.Scale(dst, a, s)
}
