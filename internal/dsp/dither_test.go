package dsp

import (
	"testing"

	"github.com/mkarjalainen/go-audio-convert/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestDitherOutputBounded(t *testing.T) {
	input := testutil.Sine(10000, 440, 0.99, 44100)

	for _, bitDepth := range []int{8, 16, 24} {
		for _, shaping := range []bool{false, true} {
			d := NewDitherer(1)
			output := d.Apply(input, bitDepth, shaping)

			require.Len(t, output, len(input))
			testutil.AssertAllInRange(t, output, -1, 1,
				"bitDepth=%d shaping=%v", bitDepth, shaping)
		}
	}
}

func TestDitherErrorNearZeroMean(t *testing.T) {
	input := testutil.Sine(50000, 440, 0.5, 44100)

	d := NewDitherer(7)
	output := d.Apply(input, 16, false)

	errs := make([]float64, len(input))
	for i := range input {
		errs[i] = output[i] - input[i]
	}

	// TPDF dither is zero-mean; with 50k samples the empirical mean of the
	// quantization error should be well under one LSB (1/32768).
	testutil.AssertNearZeroMean(t, errs, 1.0/32768)
}

func TestDitherErrorMagnitudeBounded(t *testing.T) {
	input := testutil.Sine(10000, 440, 0.5, 44100)

	d := NewDitherer(3)
	output := d.Apply(input, 16, false)

	// Without noise shaping the worst case is one LSB of dither plus half
	// an LSB of rounding.
	const maxErr = 1.5 / 32768
	for i := range input {
		assert.LessOrEqual(t, abs(output[i]-input[i]), maxErr, "sample %d", i)
	}
}

func TestDitherSeedsIndependentWithoutShaping(t *testing.T) {
	input := testutil.Sine(20000, 440, 0.5, 44100)

	a := NewDitherer(1).Apply(input, 16, false)
	b := NewDitherer(2).Apply(input, 16, false)

	errA := make([]float64, len(input))
	errB := make([]float64, len(input))
	for i := range input {
		errA[i] = a[i] - input[i]
		errB[i] = b[i] - input[i]
	}

	// With noise shaping disabled there is no carried error linking
	// samples, so the two error sequences must be uncorrelated.
	corr := stat.Correlation(errA, errB, nil)
	assert.InDelta(t, 0, corr, 0.05)
}

func TestDitherSameSeedReproduces(t *testing.T) {
	input := testutil.Sine(5000, 440, 0.5, 44100)

	a := NewDitherer(42).Apply(input, 16, true)
	b := NewDitherer(42).Apply(input, 16, true)

	assert.Equal(t, a, b)
}

func TestDitherDoesNotMutateInput(t *testing.T) {
	input := testutil.Sine(1000, 440, 0.5, 44100)
	original := make([]float64, len(input))
	copy(original, input)

	NewDitherer(5).Apply(input, 16, true)

	assert.Equal(t, original, input)
}

func TestDitherChannelsIndependentFeedback(t *testing.T) {
	channels := testutil.StereoSine(5000, 440, 0.5, 44100)

	d := NewDitherer(9)
	out := d.ApplyChannels(channels, 16, true)

	require.Len(t, out, 2)
	for _, ch := range out {
		require.Len(t, ch, 5000)
		testutil.AssertAllInRange(t, ch, -1, 1)
	}
}
