package audioconvert

import (
	"fmt"

	"github.com/mkarjalainen/go-audio-convert/internal/codec"
)

// EncodeWAV encodes de-interleaved float64 channels into a canonical PCM WAV
// file. format.SampleRate, BitDepth and Channels must be set;
// format.Channels must match len(channels).
//
// It is a convenience for building conversion inputs programmatically, e.g.
// from synthesized or captured audio.
func EncodeWAV(channels [][]float64, format AudioFormat) ([]byte, error) {
	if format.Channels != len(channels) {
		return nil, fmt.Errorf("%w: format declares %d channels, got %d",
			ErrInvalidOptions, format.Channels, len(channels))
	}
	wav, err := defaultConverter.registry.Lookup("wav")
	if err != nil {
		return nil, err
	}
	out, err := wav.Encode(channels, codec.Format{
		SampleRate: format.SampleRate,
		BitDepth:   format.BitDepth,
		Channels:   format.Channels,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return out, nil
}

// DecodeWAV decodes a canonical PCM WAV file into de-interleaved float64
// channels and the source format.
func DecodeWAV(data []byte) ([][]float64, AudioFormat, error) {
	wav, err := defaultConverter.registry.Lookup("wav")
	if err != nil {
		return nil, AudioFormat{}, err
	}
	channels, pcm, err := wav.Decode(data)
	if err != nil {
		return nil, AudioFormat{}, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return channels, AudioFormat{
		Container:  "wav",
		Codec:      wav.Name(),
		SampleRate: pcm.SampleRate,
		BitDepth:   pcm.BitDepth,
		Channels:   pcm.Channels,
	}, nil
}
