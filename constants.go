package audioconvert

// Peak normalization target: 95% of full scale, leaving 5% headroom.
const peakNormalizeHeadroom = 0.95

// Progress checkpoints, as overall completion percentages. The exact values
// are implementation-defined; only their ordering is contractual.
const (
	progressStart     = 0
	progressDecoded   = 10
	progressTrimmed   = 20
	progressResampled = 35
	progressFaded     = 45
	progressLeveled   = 55
	progressDithered  = 65
	progressRemapped  = 75
	progressEncoding  = 85
	progressMetrics   = 95
	progressDone      = 100
)

// Stage names used for failure provenance in ConversionResult.Stage.
const (
	stageValidate = "validate"
	stageDecode   = "decode"
	stageProcess  = "process"
	stageEncode   = "encode"
)
