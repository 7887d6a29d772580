package dsp

import (
	"math"
	"math/rand/v2"
)

// Ditherer requantizes float samples to a target bit depth, adding
// triangular-PDF dither noise before rounding and optionally feeding back
// half of the quantization error into the next sample (first-order noise
// shaping).
//
// The transform is stochastic; two Ditherers with different seeds produce
// statistically independent outputs for the same input.
type Ditherer struct {
	rng *rand.Rand
}

// NewDitherer creates a Ditherer seeded with the given value.
// Equal seeds reproduce the same noise sequence, which tests rely on.
func NewDitherer(seed uint64) *Ditherer {
	return &Ditherer{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Apply requantizes a mono sample sequence to bitDepth bits and returns a
// new buffer. The quantizer has 2^(bitDepth-1) levels per polarity; each
// sample receives one LSB of triangular dither before rounding, and the
// result is clamped to [-1, 1].
//
// With noiseShaping enabled, half of each sample's quantization error is
// carried into the next sample, pushing the noise floor away from the
// midband. With it disabled every sample is quantized independently.
func (d *Ditherer) Apply(samples []float64, bitDepth int, noiseShaping bool) []float64 {
	levels := float64(int64(1) << uint(bitDepth-1))
	output := make([]float64, len(samples))

	var carry float64
	for i, sample := range samples {
		value := sample + carry

		// Triangular PDF: sum of two independent uniform draws, scaled
		// to one quantization step peak-to-peak.
		noise := (d.rng.Float64() + d.rng.Float64() - 1) / levels
		value += noise

		quantized := math.Round(value*levels) / levels

		if noiseShaping {
			carry = (value - quantized) * noiseShapingFeedback
		} else {
			carry = 0
		}

		output[i] = clampSample(quantized)
	}

	return output
}

// ApplyChannels requantizes every channel independently. Error feedback
// never crosses channel boundaries.
func (d *Ditherer) ApplyChannels(channels [][]float64, bitDepth int, noiseShaping bool) [][]float64 {
	out := make([][]float64, len(channels))
	for ch, samples := range channels {
		out[ch] = d.Apply(samples, bitDepth, noiseShaping)
	}
	return out
}

func clampSample(v float64) float64 {
	if v > sampleMax {
		return sampleMax
	}
	if v < sampleMin {
		return sampleMin
	}
	return v
}
