// Package metrics computes quality measurements over the conversion
// pipeline's input and output buffers.
//
// Multichannel buffers are mixed to mono by per-index channel averaging for
// measurement purposes only; the mix never affects the audio that is
// encoded. All levels are expressed in decibels relative to full scale.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Measurement limits.
const (
	// MinDB is the floor reported for silent signals, where a true dB
	// level would be negative infinity.
	MinDB = -120.0

	// MaxSNR caps the signal-to-noise ratio when the processed signal is
	// bit-identical to the original.
	MaxSNR = 120.0

	// loudnessCalibration matches the loudness processor's RMS-to-LUFS
	// calibration offset so the two report on the same scale.
	loudnessCalibration = 23.0

	dbPerDecade = 20.0
)

// Metrics holds the quality measurements of a conversion.
type Metrics struct {
	// PeakDB is the peak level of the processed signal in dBFS.
	PeakDB float64

	// RMSDB is the RMS level of the processed signal in dBFS.
	RMSDB float64

	// DynamicRangeDB is 20*log10(peak/rms).
	DynamicRangeDB float64

	// Loudness is the approximate integrated loudness in LUFS-style units
	// (calibrated RMS, not an EBU R128 gated measurement).
	Loudness float64

	// SNRDB compares the original and processed mono mixes over their
	// overlapping prefix.
	SNRDB float64

	// THDPercent is always 0: total harmonic distortion is not
	// implemented. The field exists so the result shape is stable, but it
	// must not be presented as a real measurement.
	THDPercent float64
}

// Calculate measures the processed buffer and its relation to the original.
func Calculate(original, processed [][]float64) Metrics {
	origMono := MixToMono(original)
	procMono := MixToMono(processed)

	peak := peakAbs(procMono)
	rms := rootMeanSquare(procMono)

	m := Metrics{
		PeakDB:         amplitudeToDB(peak),
		RMSDB:          amplitudeToDB(rms),
		DynamicRangeDB: 0,
		Loudness:       MinDB,
		SNRDB:          signalToNoise(origMono, procMono),
	}

	if peak > 0 && rms > 0 {
		m.DynamicRangeDB = dbPerDecade * math.Log10(peak/rms)
	}
	if rms > 0 {
		m.Loudness = amplitudeToDB(rms) - loudnessCalibration
	}

	return m
}

// MixToMono averages all channels per index into a single sequence. Ragged
// channels are averaged over the channels that extend to each index.
func MixToMono(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return []float64{}
	}
	if len(channels) == 1 {
		out := make([]float64, len(channels[0]))
		copy(out, channels[0])
		return out
	}

	maxLen := 0
	for _, ch := range channels {
		if len(ch) > maxLen {
			maxLen = len(ch)
		}
	}

	out := make([]float64, maxLen)
	for i := range out {
		var sum float64
		var n int
		for _, ch := range channels {
			if i < len(ch) {
				sum += ch[i]
				n++
			}
		}
		out[i] = sum / float64(n)
	}
	return out
}

// signalToNoise computes SNR in dB between the original and processed mono
// mixes over their overlapping prefix.
func signalToNoise(original, processed []float64) float64 {
	n := len(original)
	if len(processed) < n {
		n = len(processed)
	}
	if n == 0 {
		return 0
	}

	orig := original[:n]
	signalPower := floats.Dot(orig, orig)
	if signalPower == 0 {
		return 0
	}

	var noisePower float64
	for i := 0; i < n; i++ {
		d := orig[i] - processed[i]
		noisePower += d * d
	}
	if noisePower == 0 {
		return MaxSNR
	}

	snr := 10 * math.Log10(signalPower/noisePower)
	if snr > MaxSNR {
		return MaxSNR
	}
	return snr
}

func peakAbs(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return floats.Norm(samples, math.Inf(1))
}

func rootMeanSquare(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return floats.Norm(samples, 2) / math.Sqrt(float64(len(samples)))
}

func amplitudeToDB(amplitude float64) float64 {
	if amplitude <= 0 {
		return MinDB
	}
	db := dbPerDecade * math.Log10(amplitude)
	if db < MinDB {
		return MinDB
	}
	return db
}
