// Package dsp implements the sample-domain building blocks of the conversion
// pipeline: sample-rate conversion, requantization with dithering, loudness
// normalization, channel mapping, and gain envelopes (trim, fade, peak
// normalize).
//
// All functions operate on planar float64 buffers (one slice per channel,
// samples nominally in [-1, 1]) and return freshly allocated output; input
// buffers are never mutated or aliased into the result. The resampling
// kernels are deterministic pure functions; dithering is the only stochastic
// transform and takes its randomness from an explicit source.
package dsp

import (
	"math"

	"github.com/mkarjalainen/go-audio-convert/internal/simdops"
)

// Quality selects the interpolation kernel used for sample-rate conversion.
type Quality int

const (
	// QualityLinear uses 2-point linear interpolation. Fastest, suitable
	// for preview and speech.
	QualityLinear Quality = iota

	// QualityCubic uses 4-point Catmull-Rom interpolation. Good balance of
	// speed and quality for general material.
	QualityCubic

	// QualitySinc uses windowed-sinc convolution (Lanczos window, a=4,
	// half-width 8 taps). Best quality, highest cost.
	QualitySinc
)

// String returns the kernel name.
func (q Quality) String() string {
	switch q {
	case QualityLinear:
		return "linear"
	case QualityCubic:
		return "cubic"
	case QualitySinc:
		return "sinc"
	default:
		return "unknown"
	}
}

// Resample converts a mono sample sequence from inputRate to outputRate
// using the selected kernel.
//
// When the rates are equal the input is returned unchanged; callers must not
// assume they own the returned slice in that case. Otherwise the output
// length is floor(len(samples) * outputRate / inputRate).
func Resample(samples []float64, inputRate, outputRate int, quality Quality) []float64 {
	if inputRate == outputRate {
		return samples
	}
	if len(samples) == 0 {
		return []float64{}
	}

	outLen := len(samples) * outputRate / inputRate
	ratio := float64(outputRate) / float64(inputRate)
	output := make([]float64, outLen)

	switch quality {
	case QualityCubic:
		resampleCubic(output, samples, ratio)
	case QualitySinc:
		resampleSinc(output, samples, ratio)
	default:
		resampleLinear(output, samples, ratio)
	}

	return output
}

// ResampleChannels applies Resample independently to every channel.
// The returned buffer is always freshly allocated, even at identical rates,
// to preserve per-stage buffer ownership.
func ResampleChannels(channels [][]float64, inputRate, outputRate int, quality Quality) [][]float64 {
	out := make([][]float64, len(channels))
	for ch, samples := range channels {
		if inputRate == outputRate {
			out[ch] = make([]float64, len(samples))
			copy(out[ch], samples)
			continue
		}
		out[ch] = Resample(samples, inputRate, outputRate, quality)
	}
	return out
}

// resampleLinear interpolates linearly between the two nearest source
// samples. When the right neighbor falls past the end of the input, the left
// sample's value is used as is.
func resampleLinear(output, input []float64, ratio float64) {
	for i := range output {
		pos := float64(i) / ratio
		idx := int(pos)
		frac := pos - float64(idx)

		if idx+1 < len(input) {
			output[i] = input[idx]*(1-frac) + input[idx+1]*frac
		} else {
			output[i] = input[idx]
		}
	}
}

// resampleCubic performs 4-point Catmull-Rom interpolation around the
// fractional source position. Neighbor indices outside the input are clamped
// to the nearest valid sample.
func resampleCubic(output, input []float64, ratio float64) {
	last := len(input) - 1
	for i := range output {
		pos := float64(i) / ratio
		idx := int(pos)
		x := pos - float64(idx)

		y0 := input[clampIndex(idx-1, last)]
		y1 := input[clampIndex(idx, last)]
		y2 := input[clampIndex(idx+1, last)]
		y3 := input[clampIndex(idx+2, last)]

		coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
		coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
		coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
		coefD := y1

		output[i] = ((coefA*x+coefB)*x+coefC)*x + coefD
	}
}

// resampleSinc convolves the input with a windowed-sinc kernel centered on
// the fractional source position. Taps falling outside the input range are
// omitted and the weighted sum is normalized by the sum of applied weights,
// so the edges are handled without zero-padding bias.
func resampleSinc(output, input []float64, ratio float64) {
	// Scratch buffers sized for the full tap window, reused per output sample.
	var weights [2*sincHalfWidth + 1]float64
	var taps [2*sincHalfWidth + 1]float64

	for i := range output {
		pos := float64(i) / ratio
		center := int(pos)

		n := 0
		for k := -sincHalfWidth; k <= sincHalfWidth; k++ {
			j := center + k
			if j < 0 || j >= len(input) {
				continue
			}
			x := pos - float64(j)
			weights[n] = sinc(x) * sinc(x/sincWindowScale)
			taps[n] = input[j]
			n++
		}

		weightSum := simdops.Sum(weights[:n])
		if weightSum == 0 {
			output[i] = 0
			continue
		}
		output[i] = simdops.Dot(weights[:n], taps[:n]) / weightSum
	}
}

// sinc is the normalized sinc function sin(pi*x)/(pi*x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func clampIndex(i, last int) int {
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
