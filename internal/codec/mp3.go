package codec

import (
	"bytes"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

const (
	mp3MaxSampleRate = 48000
	mp3Channels      = 2
	mp3BitDepth      = 16
)

// MP3Codec decodes MPEG-1 Layer III streams via
// github.com/hajimehoshi/go-mp3. The decoder always produces 16-bit stereo
// PCM at the stream's sample rate. Decode-only; Encode reports
// ErrEncodingUnsupported.
type MP3Codec struct{}

// Name returns the codec name.
func (*MP3Codec) Name() string { return "MP3" }

// Container returns the container identifier.
func (*MP3Codec) Container() string { return "mp3" }

// Extensions returns the associated file extensions.
func (*MP3Codec) Extensions() []string { return []string{"mp3"} }

// Capabilities reports the codec's limits.
func (*MP3Codec) Capabilities() Capabilities {
	return Capabilities{
		MaxSampleRate: mp3MaxSampleRate,
		MaxChannels:   mp3Channels,
		BitDepths:     []int{mp3BitDepth},
		Lossless:      false,
		CanEncode:     false,
	}
}

// Decode parses an MP3 stream into planar stereo samples.
func (c *MP3Codec) Decode(data []byte) ([][]float64, Format, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, Format{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	// go-mp3 emits interleaved 16-bit little-endian stereo.
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, Format{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	const frameBytes = 4 // 2 channels x 2 bytes
	numFrames := len(pcm) / frameBytes

	left := make([]float64, numFrames)
	right := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		left[i] = readPCMSample(pcm[i*frameBytes:], mp3BitDepth)
		right[i] = readPCMSample(pcm[i*frameBytes+2:], mp3BitDepth)
	}

	format := Format{
		SampleRate: dec.SampleRate(),
		BitDepth:   mp3BitDepth,
		Channels:   mp3Channels,
	}
	return [][]float64{left, right}, format, nil
}

// Encode is not supported for MP3.
func (c *MP3Codec) Encode([][]float64, Format) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrEncodingUnsupported, c.Container())
}
