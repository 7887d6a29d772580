package audioconvert

import (
	"fmt"
)

// AudioFormat describes what an audio byte buffer is. It is never mutated
// once produced; pipeline stages derive new formats rather than editing one
// in place.
type AudioFormat struct {
	// Container is the byte-level envelope identifier ("wav", "flac",
	// "mp3", "ogg").
	Container string

	// Codec optionally names the codec inside the container. Filled in on
	// results; ignored on input.
	Codec string

	// SampleRate in Hz. Must be positive.
	SampleRate int

	// BitDepth in bits per sample: 8, 16, 24 or 32.
	BitDepth int

	// Channels is the channel count: 1, 2, 4, 6 or 8.
	Channels int

	// Bitrate in bits per second, for lossy containers. Optional.
	Bitrate int

	// Quality is a free-form quality tier label. Optional.
	Quality string
}

// Validate checks that the format can describe a conversion target.
func (f *AudioFormat) Validate() error {
	if f.Container == "" {
		return fmt.Errorf("%w: container must be set", ErrInvalidOptions)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidOptions, f.SampleRate)
	}
	if !validBitDepth(f.BitDepth) {
		return fmt.Errorf("%w: bit depth must be 8, 16, 24 or 32, got %d", ErrInvalidOptions, f.BitDepth)
	}
	if !validChannelCount(f.Channels) {
		return fmt.Errorf("%w: channel count must be 1, 2, 4, 6 or 8, got %d", ErrInvalidOptions, f.Channels)
	}
	return nil
}

func validBitDepth(depth int) bool {
	switch depth {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

func validChannelCount(count int) bool {
	switch count {
	case 1, 2, 4, 6, 8:
		return true
	}
	return false
}

// ResampleQuality selects the interpolation kernel used when the target
// sample rate differs from the source rate.
type ResampleQuality int

const (
	// ResampleLinear uses 2-point linear interpolation.
	ResampleLinear ResampleQuality = iota

	// ResampleCubic uses 4-point Catmull-Rom interpolation.
	ResampleCubic

	// ResampleSinc uses windowed-sinc convolution.
	ResampleSinc
)

// String returns the kernel name.
func (q ResampleQuality) String() string {
	switch q {
	case ResampleLinear:
		return "linear"
	case ResampleCubic:
		return "cubic"
	case ResampleSinc:
		return "sinc"
	default:
		return "unknown"
	}
}

// TrimRange selects a time range of the decoded audio, in seconds.
type TrimRange struct {
	// Start time in seconds. A start at or past the end of the clip
	// yields an empty buffer rather than an error.
	Start float64

	// End time in seconds. Zero or negative means "to the end of the
	// clip".
	End float64
}

// ConversionOptions configures a conversion job.
type ConversionOptions struct {
	// Format is the target format. Required.
	Format AudioFormat

	// Normalize peak-normalizes the processed audio to 95% of full scale
	// (5% headroom) before encoding.
	Normalize bool

	// FadeIn and FadeOut are linear fade durations in seconds. On clips
	// shorter than their sum the two ramps overlap; the fade-out pass is
	// applied after fade-in over the overlapping samples.
	FadeIn  float64
	FadeOut float64

	// Trim, when non-nil, slices the decoded audio to the given range
	// before any other processing.
	Trim *TrimRange

	// Dither enables triangular-PDF dithering when the target bit depth
	// differs from the decoded bit depth.
	Dither bool

	// NoiseShaping enables first-order error feedback during dithering.
	NoiseShaping bool

	// ResampleQuality selects the resampling kernel.
	ResampleQuality ResampleQuality

	// NormalizeLoudness enables loudness normalization toward
	// TargetLoudness.
	NormalizeLoudness bool

	// TargetLoudness is the loudness target in LUFS-style units, e.g. -23.
	TargetLoudness float64
}

// Validate checks the option combination.
func (o *ConversionOptions) Validate() error {
	if err := o.Format.Validate(); err != nil {
		return err
	}
	if o.FadeIn < 0 || o.FadeOut < 0 {
		return fmt.Errorf("%w: fade durations must be non-negative", ErrInvalidOptions)
	}
	if o.Trim != nil {
		if o.Trim.Start < 0 {
			return fmt.Errorf("%w: trim start must be non-negative", ErrInvalidOptions)
		}
		if o.Trim.End > 0 && o.Trim.End <= o.Trim.Start {
			return fmt.Errorf("%w: trim end %.3fs is not after start %.3fs",
				ErrInvalidOptions, o.Trim.End, o.Trim.Start)
		}
	}
	switch o.ResampleQuality {
	case ResampleLinear, ResampleCubic, ResampleSinc:
	default:
		return fmt.Errorf("%w: unknown resample quality %d", ErrInvalidOptions, o.ResampleQuality)
	}
	return nil
}
