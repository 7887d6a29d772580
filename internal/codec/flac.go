package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

const (
	flacMaxSampleRate = 655350
	flacMaxChannels   = 8
)

// FLACCodec decodes FLAC streams via github.com/mewkiz/flac. It is
// decode-only: Encode reports ErrEncodingUnsupported and the limitation is
// observable through Capabilities.CanEncode.
type FLACCodec struct{}

// Name returns the codec name.
func (*FLACCodec) Name() string { return "FLAC" }

// Container returns the container identifier.
func (*FLACCodec) Container() string { return "flac" }

// Extensions returns the associated file extensions.
func (*FLACCodec) Extensions() []string { return []string{"flac"} }

// Capabilities reports the codec's limits.
func (*FLACCodec) Capabilities() Capabilities {
	return Capabilities{
		MaxSampleRate: flacMaxSampleRate,
		MaxChannels:   flacMaxChannels,
		BitDepths:     []int{8, 16, 24},
		Lossless:      true,
		CanEncode:     false,
	}
}

// Decode parses a FLAC stream into planar samples normalized by the
// stream's bit depth.
func (c *FLACCodec) Decode(data []byte) ([][]float64, Format, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, Format{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 {
		return nil, Format{}, fmt.Errorf("%w: missing FLAC stream info", ErrMalformedData)
	}

	format := Format{
		SampleRate: int(info.SampleRate),
		BitDepth:   int(info.BitsPerSample),
		Channels:   int(info.NChannels),
	}

	maxVal := float64(int64(1) << uint(format.BitDepth-1))
	channels := make([][]float64, format.Channels)
	if info.NSamples > 0 {
		for ch := range channels {
			channels[ch] = make([]float64, 0, info.NSamples)
		}
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Format{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
		}
		if len(frame.Subframes) < format.Channels {
			return nil, Format{}, fmt.Errorf("%w: frame has %d subframes, want %d",
				ErrMalformedData, len(frame.Subframes), format.Channels)
		}
		for ch := 0; ch < format.Channels; ch++ {
			for _, s := range frame.Subframes[ch].Samples {
				channels[ch] = append(channels[ch], float64(s)/maxVal)
			}
		}
	}

	for ch := range channels {
		if channels[ch] == nil {
			channels[ch] = []float64{}
		}
	}

	return channels, format, nil
}

// Encode is not supported for FLAC.
func (c *FLACCodec) Encode([][]float64, Format) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrEncodingUnsupported, c.Container())
}
