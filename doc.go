// Package audioconvert provides batch, in-memory audio format conversion in
// pure Go.
//
// The package takes an encoded audio byte buffer in one format (container,
// sample rate, bit depth, channel count) and produces a byte buffer in
// another, optionally trimming, fading, peak-normalizing,
// loudness-normalizing, dithering and quality-scoring the result along the
// way.
//
// # Quick Start
//
//	result := audioconvert.Convert(input,
//	    audioconvert.AudioFormat{Container: "wav"},
//	    audioconvert.ConversionOptions{
//	        Format: audioconvert.AudioFormat{
//	            Container:  "wav",
//	            SampleRate: 48000,
//	            BitDepth:   16,
//	            Channels:   2,
//	        },
//	        Normalize:       true,
//	        ResampleQuality: audioconvert.ResampleSinc,
//	    },
//	    nil)
//	if !result.Success {
//	    log.Fatalf("%s failed: %s", result.Stage, result.Error)
//	}
//	os.WriteFile("out.wav", result.Output, 0o644)
//
// # Pipeline
//
// Conversion runs a fixed sequence of stages, each consuming the previous
// stage's buffer and producing a new, independently owned one:
//
//	decode -> trim -> resample -> fade -> peak-normalize ->
//	loudness-normalize -> dither -> remap channels -> encode -> metrics
//
// Convert never panics across the package boundary: every stage failure is
// converted into a ConversionResult with Success=false, the failing stage
// name, and a human-readable error. Progress is reported through an optional
// callback at coarse per-stage checkpoints.
//
// # Containers
//
// The canonical container is WAV (RIFF/WAVE linear PCM, 16/24/32-bit),
// implemented with both encode and decode. FLAC, MP3 and Ogg Vorbis are
// decode-only; requesting them as an output container fails with an encoding
// error, and the limitation is visible in Codecs. No container ever emits
// bytes under a mismatched tag.
//
// # Resampling Quality
//
// Three kernels are available, all deterministic pure functions:
//
//   - [ResampleLinear]: 2-point linear interpolation. Fastest; preview and
//     speech.
//   - [ResampleCubic]: 4-point Catmull-Rom interpolation. General material.
//   - [ResampleSinc]: windowed-sinc convolution (Lanczos window, a=4,
//     half-width 8 taps). Best quality, highest cost.
//
// # Concurrency
//
// Each conversion job is single-threaded and runs to completion; there is no
// cancellation. Concurrent jobs are independent: every stage allocates fresh
// buffers, and the only shared state is the codec registry, which is built
// once and read-only afterward.
package audioconvert
