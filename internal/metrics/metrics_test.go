package metrics

import (
	"testing"

	"github.com/mkarjalainen/go-audio-convert/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFullScaleSine(t *testing.T) {
	// Full-scale sine: peak 0 dBFS, RMS -3.01 dBFS, dynamic range 3.01 dB.
	channels := [][]float64{testutil.Sine(44100, 440, 1.0, 44100)}

	m := Calculate(channels, channels)

	assert.InDelta(t, 0, m.PeakDB, 0.01)
	assert.InDelta(t, -3.01, m.RMSDB, 0.05)
	assert.InDelta(t, 3.01, m.DynamicRangeDB, 0.05)
	assert.InDelta(t, -3.01-23, m.Loudness, 0.05)
}

func TestCalculateIdenticalSignalsCapSNR(t *testing.T) {
	channels := [][]float64{testutil.Sine(4410, 440, 0.5, 44100)}

	m := Calculate(channels, channels)

	assert.Equal(t, MaxSNR, m.SNRDB)
}

func TestCalculateSNRDropsWithNoise(t *testing.T) {
	original := [][]float64{testutil.Sine(44100, 440, 0.5, 44100)}

	// Attenuation by 10% leaves a residual 20 dB below the signal.
	processed := [][]float64{make([]float64, 44100)}
	for i, v := range original[0] {
		processed[0][i] = v * 0.9
	}

	m := Calculate(original, processed)

	assert.InDelta(t, 20, m.SNRDB, 0.1)
}

func TestCalculateSilence(t *testing.T) {
	channels := [][]float64{make([]float64, 1000)}

	m := Calculate(channels, channels)

	assert.Equal(t, MinDB, m.PeakDB)
	assert.Equal(t, MinDB, m.RMSDB)
	assert.Equal(t, MinDB, m.Loudness)
	assert.Equal(t, 0.0, m.SNRDB)
	assert.Equal(t, 0.0, m.DynamicRangeDB)
}

func TestCalculateTHDIsStubbed(t *testing.T) {
	channels := [][]float64{testutil.Sine(4410, 440, 0.5, 44100)}
	m := Calculate(channels, channels)
	assert.Equal(t, 0.0, m.THDPercent)
}

func TestMixToMonoAverages(t *testing.T) {
	channels := [][]float64{
		{1.0, 0.0, -1.0},
		{0.0, 1.0, 1.0},
	}

	mono := MixToMono(channels)

	assert.Equal(t, []float64{0.5, 0.5, 0.0}, mono)
}

func TestMixToMonoSingleChannelCopies(t *testing.T) {
	channels := [][]float64{{0.1, 0.2}}

	mono := MixToMono(channels)

	require.Equal(t, channels[0], mono)
	mono[0] = 9
	assert.Equal(t, 0.1, channels[0][0])
}

func TestMixToMonoEmpty(t *testing.T) {
	assert.Empty(t, MixToMono(nil))
}

func TestSNROverDifferingLengths(t *testing.T) {
	// Processed shorter than original: compared over the overlap only.
	original := [][]float64{testutil.Sine(1000, 440, 0.5, 44100)}
	processed := [][]float64{original[0][:500]}

	m := Calculate(original, processed)

	assert.Equal(t, MaxSNR, m.SNRDB)
}
