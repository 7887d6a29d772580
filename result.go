package audioconvert

import "time"

// ConversionPhase tags the coarse stage a progress event belongs to.
type ConversionPhase string

// Progress phases, in pipeline order.
const (
	PhaseAnalyzing  ConversionPhase = "analyzing"
	PhaseProcessing ConversionPhase = "processing"
	PhaseEncoding   ConversionPhase = "encoding"
	PhaseFinalizing ConversionPhase = "finalizing"
)

// ConversionProgress is a snapshot of pipeline progress. Events fire at
// coarse per-stage checkpoints, not continuously, and are never retracted:
// events emitted before a failure remain valid.
type ConversionProgress struct {
	// Phase is the pipeline phase the event belongs to.
	Phase ConversionPhase

	// Percent is overall completion, 0-100.
	Percent int

	// ETA is a rough estimate of remaining time, extrapolated from the
	// time spent so far. Zero when no estimate is available.
	ETA time.Duration

	// Step describes the current processing step.
	Step string
}

// ProgressFunc receives progress events during a conversion. A nil callback
// disables progress reporting. The callback runs synchronously on the
// converting goroutine and should return quickly.
type ProgressFunc func(ConversionProgress)

// QualityMetrics summarizes the measured quality of a conversion. Levels
// are in dB relative to full scale; Loudness is in LUFS-style units.
type QualityMetrics struct {
	PeakDB         float64
	RMSDB          float64
	DynamicRangeDB float64
	Loudness       float64
	SNRDB          float64

	// THDPercent is always 0: total harmonic distortion measurement is
	// not implemented.
	THDPercent float64
}

// ConversionResult is the outcome of a conversion job. It is created once
// per job and not mutated afterward.
//
// On failure Success is false, Error holds a human-readable message, Stage
// names the pipeline stage that failed, and the metrics are zeroed. Callers
// must treat Success as the sole failure signal and must not parse Error for
// control flow.
type ConversionResult struct {
	Success bool

	// Output is the encoded byte buffer. Nil on failure.
	Output []byte

	// Format describes the output buffer.
	Format AudioFormat

	// OriginalSize and ConvertedSize are the input and output byte counts.
	OriginalSize  int
	ConvertedSize int

	// Metrics measures the processed audio against the decoded input.
	Metrics QualityMetrics

	// Duration is the total processing time of the job.
	Duration time.Duration

	// Stage names the pipeline stage that failed. Empty on success.
	Stage string

	// Error is a human-readable failure message. Empty on success.
	Error string
}
