// Package testutil provides reusable test helper functions for the audio
// conversion tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	DBTolerance      = 0.01
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertNearZeroMean verifies that the mean of s is within tolerance of zero.
// Used for statistical checks on stochastic transforms such as dithering.
func AssertNearZeroMean(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	mean := sum / float64(len(s))
	return assert.InDelta(t, 0, mean, tolerance,
		"mean %e exceeds tolerance %e", mean, tolerance)
}

// Sine generates n samples of a sine wave at the given frequency and rate
// with the given amplitude.
func Sine(n int, freq, amplitude float64, sampleRate int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// StereoSine generates a two-channel buffer with the same sine wave in both
// channels.
func StereoSine(n int, freq, amplitude float64, sampleRate int) [][]float64 {
	left := Sine(n, freq, amplitude, sampleRate)
	right := make([]float64, n)
	copy(right, left)
	return [][]float64{left, right}
}
