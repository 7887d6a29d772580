package codec

import (
	"bytes"
	"fmt"

	"github.com/jfreymuth/oggvorbis"
)

const (
	vorbisMaxSampleRate = 192000
	vorbisMaxChannels   = 8
	vorbisBitDepth      = 16
)

// VorbisCodec decodes Ogg Vorbis streams via github.com/jfreymuth/oggvorbis.
// Decode-only; Encode reports ErrEncodingUnsupported.
type VorbisCodec struct{}

// Name returns the codec name.
func (*VorbisCodec) Name() string { return "Ogg Vorbis" }

// Container returns the container identifier.
func (*VorbisCodec) Container() string { return "ogg" }

// Extensions returns the associated file extensions.
func (*VorbisCodec) Extensions() []string { return []string{"ogg", "oga"} }

// Capabilities reports the codec's limits.
func (*VorbisCodec) Capabilities() Capabilities {
	return Capabilities{
		MaxSampleRate: vorbisMaxSampleRate,
		MaxChannels:   vorbisMaxChannels,
		BitDepths:     []int{vorbisBitDepth},
		Lossless:      false,
		CanEncode:     false,
	}
}

// Decode parses an Ogg Vorbis stream into planar samples. Vorbis is a
// float codec, so the reported bit depth is nominal.
func (c *VorbisCodec) Decode(data []byte) ([][]float64, Format, error) {
	interleaved, vf, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, Format{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if vf.Channels <= 0 {
		return nil, Format{}, fmt.Errorf("%w: invalid channel count", ErrMalformedData)
	}

	numFrames := len(interleaved) / vf.Channels
	channels := make([][]float64, vf.Channels)
	for ch := range channels {
		channels[ch] = make([]float64, numFrames)
	}
	for i := 0; i < numFrames; i++ {
		for ch := 0; ch < vf.Channels; ch++ {
			channels[ch][i] = float64(interleaved[i*vf.Channels+ch])
		}
	}

	format := Format{
		SampleRate: vf.SampleRate,
		BitDepth:   vorbisBitDepth,
		Channels:   vf.Channels,
	}
	return channels, format, nil
}

// Encode is not supported for Ogg Vorbis.
func (c *VorbisCodec) Encode([][]float64, Format) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrEncodingUnsupported, c.Container())
}
