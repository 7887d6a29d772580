package dsp

// ConvertChannels changes the channel count of a planar buffer and returns
// new buffers.
//
// Stereo to mono averages the two channels; mono to stereo duplicates the
// single channel. Every other (source, target) pair maps output channel k to
// source channel k mod sourceCount: channels are cycled when the target
// exceeds the source and truncated when it is smaller. This is a deliberate
// simplification for the generic case, not a broadcast-standard downmix
// matrix; surround material that needs proper downmixing should be mixed
// upstream.
func ConvertChannels(channels [][]float64, targetCount int) [][]float64 {
	sourceCount := len(channels)
	if sourceCount == 0 || targetCount <= 0 {
		return [][]float64{}
	}
	if sourceCount == targetCount {
		return cloneChannels(channels)
	}

	if sourceCount == stereoChannels && targetCount == monoChannels {
		return [][]float64{averagePair(channels[0], channels[1])}
	}

	if sourceCount == monoChannels && targetCount == stereoChannels {
		left := make([]float64, len(channels[0]))
		right := make([]float64, len(channels[0]))
		copy(left, channels[0])
		copy(right, channels[0])
		return [][]float64{left, right}
	}

	out := make([][]float64, targetCount)
	for k := 0; k < targetCount; k++ {
		src := channels[k%sourceCount]
		out[k] = make([]float64, len(src))
		copy(out[k], src)
	}
	return out
}

// averagePair mixes two equal-length channels into one by per-index
// averaging.
func averagePair(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}
