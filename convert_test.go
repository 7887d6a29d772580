package audioconvert

import (
	"sync"
	"testing"

	"github.com/mkarjalainen/go-audio-convert/internal/codec"
	"github.com/mkarjalainen/go-audio-convert/internal/dsp"
	"github.com/mkarjalainen/go-audio-convert/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeTestWAV builds canonical WAV bytes for pipeline tests.
func encodeTestWAV(t *testing.T, channels [][]float64, sampleRate, bitDepth int) []byte {
	t.Helper()
	data, err := (&codec.WAVCodec{}).Encode(channels, codec.Format{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Channels:   len(channels),
	})
	require.NoError(t, err)
	return data
}

// decodeResultWAV parses a result's WAV output back into samples.
func decodeResultWAV(t *testing.T, result ConversionResult) ([][]float64, codec.Format) {
	t.Helper()
	require.True(t, result.Success, "conversion failed at %s: %s", result.Stage, result.Error)
	channels, format, err := (&codec.WAVCodec{}).Decode(result.Output)
	require.NoError(t, err)
	return channels, format
}

func wavFormat(sampleRate, bitDepth, numChannels int) AudioFormat {
	return AudioFormat{
		Container:  "wav",
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Channels:   numChannels,
	}
}

func TestConvertIdentityRoundTrip(t *testing.T) {
	input := encodeTestWAV(t, testutil.StereoSine(4410, 440, 0.5, 44100), 44100, 16)

	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format: wavFormat(44100, 16, 2),
	}, nil)

	channels, format := decodeResultWAV(t, result)
	assert.Equal(t, codec.Format{SampleRate: 44100, BitDepth: 16, Channels: 2}, format)
	assert.Len(t, channels[0], 4410)

	assert.Equal(t, len(input), result.OriginalSize)
	assert.Equal(t, len(result.Output), result.ConvertedSize)
	assert.Equal(t, "PCM WAV", result.Format.Codec)
	assert.Empty(t, result.Error)
	assert.Empty(t, result.Stage)
	// Bit-identical samples cap the SNR.
	assert.Equal(t, 120.0, result.Metrics.SNRDB)
}

func TestConvertResamplesToTargetRate(t *testing.T) {
	const inFrames = 44100
	input := encodeTestWAV(t, [][]float64{testutil.Sine(inFrames, 440, 0.5, 44100)}, 44100, 16)

	for _, quality := range []ResampleQuality{ResampleLinear, ResampleCubic, ResampleSinc} {
		t.Run(quality.String(), func(t *testing.T) {
			result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
				Format:          wavFormat(48000, 16, 1),
				ResampleQuality: quality,
			}, nil)

			channels, format := decodeResultWAV(t, result)
			assert.Equal(t, 48000, format.SampleRate)
			assert.Len(t, channels[0], inFrames*48000/44100)
		})
	}
}

func TestConvertTrim(t *testing.T) {
	// 2 seconds at 8kHz; keep [0.5s, 1.5s).
	input := encodeTestWAV(t, [][]float64{testutil.Sine(16000, 440, 0.5, 8000)}, 8000, 16)

	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format: wavFormat(8000, 16, 1),
		Trim:   &TrimRange{Start: 0.5, End: 1.5},
	}, nil)

	channels, _ := decodeResultWAV(t, result)
	assert.Len(t, channels[0], 8000)
}

func TestConvertTrimPastEndYieldsEmptyOutput(t *testing.T) {
	input := encodeTestWAV(t, [][]float64{testutil.Sine(8000, 440, 0.5, 8000)}, 8000, 16)

	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format: wavFormat(8000, 16, 1),
		Trim:   &TrimRange{Start: 10},
	}, nil)

	channels, _ := decodeResultWAV(t, result)
	assert.Empty(t, channels[0])
}

func TestConvertFadesShapeEnvelope(t *testing.T) {
	samples := make([]float64, 8000)
	for i := range samples {
		samples[i] = 0.8
	}
	input := encodeTestWAV(t, [][]float64{samples}, 8000, 16)

	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format:  wavFormat(8000, 16, 1),
		FadeIn:  0.25,
		FadeOut: 0.25,
	}, nil)

	channels, _ := decodeResultWAV(t, result)
	out := channels[0]
	assert.InDelta(t, 0, out[0], 1e-3)
	assert.InDelta(t, 0.8, out[4000], 1e-3)
	assert.InDelta(t, 0, out[7999], 1e-3)
}

func TestConvertPeakNormalize(t *testing.T) {
	input := encodeTestWAV(t, [][]float64{testutil.Sine(8000, 440, 0.2, 8000)}, 8000, 16)

	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format:    wavFormat(8000, 16, 1),
		Normalize: true,
	}, nil)

	channels, _ := decodeResultWAV(t, result)

	var peak float64
	for _, v := range channels[0] {
		if v > peak {
			peak = v
		}
	}
	assert.InDelta(t, 0.95, peak, 1e-3)
	// 20*log10(0.95) = -0.45 dBFS.
	assert.InDelta(t, -0.45, result.Metrics.PeakDB, 0.05)
}

func TestConvertLoudnessNormalization(t *testing.T) {
	input := encodeTestWAV(t, testutil.StereoSine(44100, 440, 0.05, 44100), 44100, 16)

	const target = -30.0
	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format:            wavFormat(44100, 16, 2),
		NormalizeLoudness: true,
		TargetLoudness:    target,
	}, nil)

	channels, _ := decodeResultWAV(t, result)
	measured := dsp.MeasureLoudness(channels)
	assert.InDelta(t, target, measured, 0.5)
	assert.InDelta(t, target, result.Metrics.Loudness, 0.5)
}

func TestConvertChannelRemap(t *testing.T) {
	input := encodeTestWAV(t, testutil.StereoSine(4410, 440, 0.5, 44100), 44100, 16)

	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format: wavFormat(44100, 16, 1),
	}, nil)

	channels, format := decodeResultWAV(t, result)
	assert.Equal(t, 1, format.Channels)
	require.Len(t, channels, 1)
	assert.Len(t, channels[0], 4410)
}

func TestConvertDitherDeterministicWithSeed(t *testing.T) {
	input := encodeTestWAV(t, [][]float64{testutil.Sine(8000, 440, 0.5, 8000)}, 8000, 24)

	opts := ConversionOptions{
		Format: wavFormat(8000, 16, 1),
		Dither: true,
	}

	a := NewConverterWithSeed(7).Convert(input, AudioFormat{Container: "wav"}, opts, nil)
	b := NewConverterWithSeed(7).Convert(input, AudioFormat{Container: "wav"}, opts, nil)

	require.True(t, a.Success)
	require.True(t, b.Success)
	assert.Equal(t, a.Output, b.Output)
}

func TestConvertCorruptInputFailsCleanly(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"garbage", []byte("this is not a wav file at all, just text bytes")},
		{"truncated_header", []byte("RIFF\x00\x00\x00\x00WAVE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Convert(tt.input, AudioFormat{Container: "wav"}, ConversionOptions{
				Format: wavFormat(44100, 16, 2),
			}, nil)

			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Error)
			assert.Equal(t, "decode", result.Stage)
			assert.Nil(t, result.Output)
		})
	}
}

func TestConvertUnsupportedInputContainer(t *testing.T) {
	result := Convert([]byte{1, 2, 3}, AudioFormat{Container: "aiff"}, ConversionOptions{
		Format: wavFormat(44100, 16, 2),
	}, nil)

	assert.False(t, result.Success)
	assert.Equal(t, "decode", result.Stage)
	assert.Contains(t, result.Error, "aiff")
}

func TestConvertDecodeOnlyTargetFails(t *testing.T) {
	input := encodeTestWAV(t, [][]float64{testutil.Sine(4410, 440, 0.5, 44100)}, 44100, 16)

	for _, container := range []string{"flac", "mp3", "ogg"} {
		t.Run(container, func(t *testing.T) {
			result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
				Format: AudioFormat{
					Container:  container,
					SampleRate: 44100,
					BitDepth:   16,
					Channels:   1,
				},
			}, nil)

			assert.False(t, result.Success)
			assert.Equal(t, "encode", result.Stage)
			assert.NotEmpty(t, result.Error)
		})
	}
}

func TestConvertValidationFailures(t *testing.T) {
	input := encodeTestWAV(t, [][]float64{{0}}, 8000, 16)

	tests := []struct {
		name string
		opts ConversionOptions
	}{
		{"zero_channels", ConversionOptions{Format: AudioFormat{Container: "wav", SampleRate: 44100, BitDepth: 16}}},
		{"bad_bit_depth", ConversionOptions{Format: AudioFormat{Container: "wav", SampleRate: 44100, BitDepth: 12, Channels: 2}}},
		{"negative_rate", ConversionOptions{Format: AudioFormat{Container: "wav", SampleRate: -1, BitDepth: 16, Channels: 2}}},
		{"negative_fade", ConversionOptions{Format: wavFormat(44100, 16, 2), FadeIn: -1}},
		{"inverted_trim", ConversionOptions{Format: wavFormat(44100, 16, 2), Trim: &TrimRange{Start: 2, End: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Convert(input, AudioFormat{Container: "wav"}, tt.opts, nil)

			assert.False(t, result.Success)
			assert.Equal(t, "validate", result.Stage)
			assert.NotEmpty(t, result.Error)
		})
	}
}

func TestConvertProgressCheckpoints(t *testing.T) {
	input := encodeTestWAV(t, testutil.StereoSine(44100, 440, 0.5, 44100), 44100, 24)

	var events []ConversionProgress
	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format:          wavFormat(48000, 16, 1),
		Normalize:       true,
		FadeIn:          0.1,
		Dither:          true,
		ResampleQuality: ResampleCubic,
	}, func(p ConversionProgress) {
		events = append(events, p)
	})

	require.True(t, result.Success, result.Error)
	require.NotEmpty(t, events)

	assert.Equal(t, PhaseAnalyzing, events[0].Phase)
	last := events[len(events)-1]
	assert.Equal(t, PhaseFinalizing, last.Phase)
	assert.Equal(t, 100, last.Percent)

	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].Percent, events[i-1].Percent,
			"progress went backwards at event %d", i)
	}
}

func TestConvertProgressSurvivesFailure(t *testing.T) {
	var events []ConversionProgress
	result := Convert([]byte("garbage"), AudioFormat{Container: "wav"}, ConversionOptions{
		Format: wavFormat(44100, 16, 2),
	}, func(p ConversionProgress) {
		events = append(events, p)
	})

	assert.False(t, result.Success)
	// The decode checkpoint fired before the failure and stays valid.
	require.NotEmpty(t, events)
	assert.Equal(t, PhaseAnalyzing, events[0].Phase)
}

func TestConvertConcurrentJobsIndependent(t *testing.T) {
	input := encodeTestWAV(t, testutil.StereoSine(4410, 440, 0.5, 44100), 44100, 16)

	conv := NewConverter()
	var wg sync.WaitGroup
	results := make([]ConversionResult, 8)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = conv.Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
				Format: wavFormat(22050, 16, 1),
			}, nil)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		require.True(t, r.Success, "job %d: %s", i, r.Error)
		assert.Equal(t, results[0].Output, r.Output, "job %d output differs", i)
	}
}

func TestConvertFullPipelineCombined(t *testing.T) {
	// Exercise every stage in one job.
	input := encodeTestWAV(t, testutil.StereoSine(88200, 440, 0.3, 44100), 44100, 24)

	result := Convert(input, AudioFormat{Container: "wav"}, ConversionOptions{
		Format:            wavFormat(48000, 16, 1),
		Trim:              &TrimRange{Start: 0.25, End: 1.75},
		FadeIn:            0.1,
		FadeOut:           0.1,
		Normalize:         true,
		NormalizeLoudness: true,
		TargetLoudness:    -24,
		Dither:            true,
		NoiseShaping:      true,
		ResampleQuality:   ResampleSinc,
	}, nil)

	channels, format := decodeResultWAV(t, result)
	assert.Equal(t, codec.Format{SampleRate: 48000, BitDepth: 16, Channels: 1}, format)
	// 1.5 seconds of trimmed audio resampled to 48kHz.
	assert.Len(t, channels[0], 66150*48000/44100)
	testutil.AssertAllInRange(t, channels[0], -1, 1)
}
