package dsp

// Trim slices every channel to the [start, end) time range, given in
// seconds, and returns new buffers. Sample indices are floor(time * rate).
// An end of zero or less means "to the end of the clip". A start at or past
// the end of the buffer yields empty channels rather than an error.
func Trim(channels [][]float64, sampleRate int, start, end float64) [][]float64 {
	out := make([][]float64, len(channels))
	for ch, samples := range channels {
		startIdx := int(start * float64(sampleRate))
		endIdx := len(samples)
		if end > 0 {
			if idx := int(end * float64(sampleRate)); idx < endIdx {
				endIdx = idx
			}
		}
		if startIdx >= len(samples) || startIdx >= endIdx {
			out[ch] = []float64{}
			continue
		}
		out[ch] = make([]float64, endIdx-startIdx)
		copy(out[ch], samples[startIdx:endIdx])
	}
	return out
}

// Fade applies linear fade-in and fade-out envelopes and returns new
// buffers. The fade-in ramps gain 0→1 over the first fadeIn*rate samples;
// the fade-out ramps 1→0 over the last fadeOut*rate samples. The two ramps
// are applied independently, fade-out after fade-in, so on clips shorter
// than the combined fades the overlapping region carries both gains.
func Fade(channels [][]float64, sampleRate int, fadeIn, fadeOut float64) [][]float64 {
	out := cloneChannels(channels)

	fadeInSamples := int(fadeIn * float64(sampleRate))
	fadeOutSamples := int(fadeOut * float64(sampleRate))

	for _, samples := range out {
		for i := 0; i < fadeInSamples && i < len(samples); i++ {
			samples[i] *= float64(i) / float64(fadeInSamples)
		}

		start := len(samples) - fadeOutSamples
		if start < 0 {
			start = 0
		}
		for i := start; i < len(samples) && fadeOutSamples > 0; i++ {
			samples[i] *= float64(len(samples)-i) / float64(fadeOutSamples)
		}
	}
	return out
}

// PeakNormalize scales every channel by a common factor so the global peak
// lands at the given fraction of full scale, returning new buffers. A
// silent buffer is returned as an unchanged copy.
func PeakNormalize(channels [][]float64, headroom float64) [][]float64 {
	var peak float64
	for _, samples := range channels {
		for _, v := range samples {
			if a := abs(v); a > peak {
				peak = a
			}
		}
	}
	if peak == 0 {
		return cloneChannels(channels)
	}

	gain := headroom / peak
	out := make([][]float64, len(channels))
	for ch, samples := range channels {
		out[ch] = make([]float64, len(samples))
		for i, v := range samples {
			out[ch][i] = v * gain
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
