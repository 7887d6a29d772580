package dsp

// Resampling constants.
const (
	// sincHalfWidth is the half-width of the windowed-sinc kernel in taps.
	sincHalfWidth = 8

	// sincWindowScale is the Lanczos window parameter (a=4): the kernel
	// weight for offset x is sinc(x) * sinc(x/sincWindowScale).
	sincWindowScale = 4

	// cubicPoints is the number of points used by cubic interpolation.
	cubicPoints = 4
)

// Catmull-Rom basis coefficients for 4-point cubic interpolation.
const (
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// Loudness constants.
const (
	// loudnessCalibration is subtracted from the RMS level in dB to
	// approximate an integrated-loudness unit scale. Not a full EBU R128
	// implementation; see the package documentation.
	loudnessCalibration = 23.0

	// dbPerDecade converts between linear amplitude ratios and decibels.
	dbPerDecade = 20.0
)

// Dithering constants.
const (
	// noiseShapingFeedback is the fraction of the quantization error
	// carried into the next sample when noise shaping is enabled.
	noiseShapingFeedback = 0.5
)

// Sample domain limits. Decoded samples are kept in [-1, 1] by convention;
// gain stages clamp back into this range.
const (
	sampleMax = 1.0
	sampleMin = -1.0
)

// Channel count constants.
const (
	monoChannels   = 1
	stereoChannels = 2
)
