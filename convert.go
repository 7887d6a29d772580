package audioconvert

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mkarjalainen/go-audio-convert/internal/codec"
	"github.com/mkarjalainen/go-audio-convert/internal/dsp"
	"github.com/mkarjalainen/go-audio-convert/internal/metrics"
)

// Converter runs conversion jobs against a codec registry. A Converter is
// safe for concurrent use: jobs share only the read-only registry and every
// pipeline stage allocates fresh buffers.
type Converter struct {
	registry *codec.Registry

	// ditherSeed, when set, makes dither noise reproducible across jobs.
	ditherSeed    uint64
	hasDitherSeed bool
}

// NewConverter creates a Converter with the built-in codec registry and
// random dither noise.
func NewConverter() *Converter {
	return &Converter{registry: codec.NewRegistry()}
}

// NewConverterWithSeed creates a Converter whose dither noise is seeded
// deterministically. Intended for tests and reproducible pipelines.
func NewConverterWithSeed(seed uint64) *Converter {
	return &Converter{
		registry:      codec.NewRegistry(),
		ditherSeed:    seed,
		hasDitherSeed: true,
	}
}

// defaultConverter backs the package-level Convert and the codec
// introspection functions.
var defaultConverter = NewConverter()

// Convert runs a conversion job with the package's default Converter.
// See Converter.Convert.
func Convert(input []byte, inputFormat AudioFormat, options ConversionOptions, onProgress ProgressFunc) ConversionResult {
	return defaultConverter.Convert(input, inputFormat, options, onProgress)
}

// Convert decodes input according to inputFormat, runs the processing
// stages selected by options, encodes into the target container, and
// measures the result.
//
// Convert never panics across the package boundary: every failure,
// including stage panics, is converted into a ConversionResult with
// Success=false, the failing stage name and a human-readable error.
// Progress events already emitted before a failure remain valid.
func (c *Converter) Convert(input []byte, inputFormat AudioFormat, options ConversionOptions, onProgress ProgressFunc) (result ConversionResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = c.failure(start, input, stageProcess,
				fmt.Errorf("%w: %v", ErrProcessingFailed, r))
		}
	}()

	emit := func(phase ConversionPhase, percent int, step string) {
		if onProgress == nil {
			return
		}
		var eta time.Duration
		if percent > 0 && percent < progressDone {
			elapsed := time.Since(start)
			eta = elapsed * time.Duration(progressDone-percent) / time.Duration(percent)
		}
		onProgress(ConversionProgress{Phase: phase, Percent: percent, ETA: eta, Step: step})
	}

	if inputFormat.Container == "" {
		return c.failure(start, input, stageValidate,
			fmt.Errorf("%w: input container must be set", ErrInvalidOptions))
	}
	if err := options.Validate(); err != nil {
		return c.failure(start, input, stageValidate, err)
	}

	// Decode.
	emit(PhaseAnalyzing, progressStart, "decoding input")

	decoder, err := c.registry.Lookup(inputFormat.Container)
	if err != nil {
		return c.failure(start, input, stageDecode,
			fmt.Errorf("%w: no codec for input container %q", ErrUnsupportedFormat, inputFormat.Container))
	}
	channels, pcm, err := decoder.Decode(input)
	if err != nil {
		return c.failure(start, input, stageDecode,
			fmt.Errorf("%w: %v", ErrDecodeFailed, err))
	}
	emit(PhaseAnalyzing, progressDecoded, "decoded input")

	// The decoded buffer is kept aside for quality measurement; stages
	// below operate on fresh buffers and never alias it.
	original := channels
	sampleRate := pcm.SampleRate

	// Trim.
	if options.Trim != nil {
		channels = dsp.Trim(channels, sampleRate, options.Trim.Start, options.Trim.End)
		emit(PhaseProcessing, progressTrimmed, "trimmed")
	}

	// Resample.
	if options.Format.SampleRate != sampleRate {
		channels = dsp.ResampleChannels(channels, sampleRate, options.Format.SampleRate, resampleQuality(options.ResampleQuality))
		sampleRate = options.Format.SampleRate
		emit(PhaseProcessing, progressResampled,
			fmt.Sprintf("resampled to %d Hz (%s)", sampleRate, options.ResampleQuality))
	}

	// Fades.
	if options.FadeIn > 0 || options.FadeOut > 0 {
		channels = dsp.Fade(channels, sampleRate, options.FadeIn, options.FadeOut)
		emit(PhaseProcessing, progressFaded, "applied fades")
	}

	// Peak normalization.
	if options.Normalize {
		channels = dsp.PeakNormalize(channels, peakNormalizeHeadroom)
		emit(PhaseProcessing, progressLeveled, "peak normalized")
	}

	// Loudness normalization.
	if options.NormalizeLoudness {
		channels = dsp.NormalizeLoudness(channels, options.TargetLoudness)
		emit(PhaseProcessing, progressLeveled, "loudness normalized")
	}

	// Requantization.
	if options.Dither && options.Format.BitDepth != pcm.BitDepth {
		d := dsp.NewDitherer(c.jobSeed())
		channels = d.ApplyChannels(channels, options.Format.BitDepth, options.NoiseShaping)
		emit(PhaseProcessing, progressDithered,
			fmt.Sprintf("dithered to %d bits", options.Format.BitDepth))
	}

	// Channel mapping.
	if options.Format.Channels != len(channels) {
		channels = dsp.ConvertChannels(channels, options.Format.Channels)
		emit(PhaseProcessing, progressRemapped,
			fmt.Sprintf("remapped to %d channels", options.Format.Channels))
	}

	// Encode.
	emit(PhaseEncoding, progressEncoding, "encoding output")

	encoder, err := c.registry.Lookup(options.Format.Container)
	if err != nil {
		return c.failure(start, input, stageEncode,
			fmt.Errorf("%w: no codec for output container %q", ErrUnsupportedFormat, options.Format.Container))
	}
	output, err := encoder.Encode(channels, codec.Format{
		SampleRate: options.Format.SampleRate,
		BitDepth:   options.Format.BitDepth,
		Channels:   options.Format.Channels,
	})
	if err != nil {
		return c.failure(start, input, stageEncode,
			fmt.Errorf("%w: %v", ErrEncodeFailed, err))
	}

	// Metrics.
	emit(PhaseFinalizing, progressMetrics, "computing quality metrics")
	m := metrics.Calculate(original, channels)
	emit(PhaseFinalizing, progressDone, "done")

	outputFormat := options.Format
	outputFormat.Codec = encoder.Name()

	return ConversionResult{
		Success:       true,
		Output:        output,
		Format:        outputFormat,
		OriginalSize:  len(input),
		ConvertedSize: len(output),
		Metrics: QualityMetrics{
			PeakDB:         m.PeakDB,
			RMSDB:          m.RMSDB,
			DynamicRangeDB: m.DynamicRangeDB,
			Loudness:       m.Loudness,
			SNRDB:          m.SNRDB,
			THDPercent:     m.THDPercent,
		},
		Duration: time.Since(start),
	}
}

// failure builds a failed result with zeroed metrics.
func (c *Converter) failure(start time.Time, input []byte, stage string, err error) ConversionResult {
	return ConversionResult{
		Success:      false,
		OriginalSize: len(input),
		Duration:     time.Since(start),
		Stage:        stage,
		Error:        err.Error(),
	}
}

// jobSeed picks the dither seed for one job.
func (c *Converter) jobSeed() uint64 {
	if c.hasDitherSeed {
		return c.ditherSeed
	}
	return rand.Uint64()
}

// resampleQuality maps the public quality enum to the DSP kernel selector.
func resampleQuality(q ResampleQuality) dsp.Quality {
	switch q {
	case ResampleCubic:
		return dsp.QualityCubic
	case ResampleSinc:
		return dsp.QualitySinc
	default:
		return dsp.QualityLinear
	}
}
