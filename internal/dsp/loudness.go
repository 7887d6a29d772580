package dsp

import (
	"math"

	"github.com/mkarjalainen/go-audio-convert/internal/simdops"
	"gonum.org/v1/gonum/floats"
)

// MeasureLoudness estimates the integrated loudness of a multichannel
// buffer in LUFS-style units: the RMS level across all channels and samples
// converted to dB, minus a fixed calibration offset. This is a calibrated
// RMS approximation, not an EBU R128 gated measurement.
//
// Silent or empty input measures negative infinity.
func MeasureLoudness(channels [][]float64) float64 {
	var sumSquares float64
	var count int
	for _, samples := range channels {
		if len(samples) == 0 {
			continue
		}
		sumSquares += floats.Dot(samples, samples)
		count += len(samples)
	}
	if count == 0 || sumSquares == 0 {
		return math.Inf(-1)
	}

	rms := math.Sqrt(sumSquares / float64(count))
	return dbPerDecade*math.Log10(rms) - loudnessCalibration
}

// NormalizeLoudness applies a uniform gain that moves the measured loudness
// to target, returning new buffers. Samples pushed past full scale by the
// gain are hard-clamped to [-1, 1]; this is a saturating clip, not a
// limiter, and callers needing headroom must pre-attenuate.
//
// Silent input is returned as an unchanged copy since no finite gain can
// reach the target.
func NormalizeLoudness(channels [][]float64, target float64) [][]float64 {
	current := MeasureLoudness(channels)
	if math.IsInf(current, -1) {
		return cloneChannels(channels)
	}

	gain := math.Pow(10, (target-current)/dbPerDecade)

	out := make([][]float64, len(channels))
	for ch, samples := range channels {
		scaled := make([]float64, len(samples))
		if len(samples) > 0 {
			simdops.Scale(scaled, samples, gain)
		}
		for i, v := range scaled {
			scaled[i] = clampSample(v)
		}
		out[ch] = scaled
	}
	return out
}

// cloneChannels deep-copies a planar buffer.
func cloneChannels(channels [][]float64) [][]float64 {
	out := make([][]float64, len(channels))
	for ch, samples := range channels {
		out[ch] = make([]float64, len(samples))
		copy(out[ch], samples)
	}
	return out
}
