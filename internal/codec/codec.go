// Package codec implements the container codecs of the conversion pipeline
// and the registry that maps container identifiers to them.
//
// The canonical container is WAV (RIFF/WAVE, linear PCM), implemented here
// byte-for-byte with both encode and decode. FLAC, MP3 and Ogg Vorbis are
// decode-only: decoding delegates to mature pure-Go libraries, while Encode
// reports ErrEncodingUnsupported so that no container ever emits bytes under
// a mismatched tag. Encode capability is observable through Capabilities.
package codec

import (
	"errors"
	"fmt"
	"sort"
)

// Common errors returned by codecs and the registry.
var (
	// ErrUnknownContainer indicates that no codec is registered for the
	// requested container identifier.
	ErrUnknownContainer = errors.New("unknown container")

	// ErrMalformedData indicates input bytes that cannot be decoded as the
	// declared container.
	ErrMalformedData = errors.New("malformed audio data")

	// ErrEncodingUnsupported indicates a decode-only codec.
	ErrEncodingUnsupported = errors.New("encoding not supported for container")

	// ErrUnsupportedBitDepth indicates a bit depth outside the codec's
	// capability set.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)

// Format describes the PCM attributes of a decoded or to-be-encoded buffer.
type Format struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

// Capabilities describes the limits and properties of a codec. The registry
// exposes these so callers can check support before converting.
type Capabilities struct {
	MaxSampleRate int
	MaxChannels   int
	BitDepths     []int
	Lossless      bool
	CanEncode     bool
}

// SupportsBitDepth reports whether the codec can encode the given bit depth.
func (c Capabilities) SupportsBitDepth(depth int) bool {
	for _, d := range c.BitDepths {
		if d == depth {
			return true
		}
	}
	return false
}

// Codec converts between container bytes and planar float64 PCM.
// Implementations must be stateless and safe for concurrent use.
type Codec interface {
	// Name is the human-readable codec name.
	Name() string

	// Container is the container identifier the codec is registered under.
	Container() string

	// Extensions lists the file extensions associated with the container,
	// without the leading dot.
	Extensions() []string

	// Capabilities reports the codec's limits and encode support.
	Capabilities() Capabilities

	// Decode parses container bytes into planar samples in [-1, 1] and the
	// PCM attributes of the stream.
	Decode(data []byte) ([][]float64, Format, error)

	// Encode serializes planar samples into container bytes.
	// Decode-only codecs return ErrEncodingUnsupported.
	Encode(channels [][]float64, format Format) ([]byte, error)
}

// Registry maps container identifiers to codecs. It is populated once by
// NewRegistry and read-only afterward, so concurrent lookups need no
// synchronization.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry builds a registry with all built-in codecs.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	for _, c := range []Codec{
		&WAVCodec{},
		&FLACCodec{},
		&MP3Codec{},
		&VorbisCodec{},
	} {
		r.codecs[c.Container()] = c
	}
	return r
}

// Lookup returns the codec registered for the container identifier.
func (r *Registry) Lookup(container string) (Codec, error) {
	c, ok := r.codecs[container]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContainer, container)
	}
	return c, nil
}

// LookupByExtension returns the codec whose extension list contains ext
// (without the leading dot).
func (r *Registry) LookupByExtension(ext string) (Codec, error) {
	for _, c := range r.codecs {
		for _, e := range c.Extensions() {
			if e == ext {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: extension %q", ErrUnknownContainer, ext)
}

// Containers returns the registered container identifiers in sorted order.
func (r *Registry) Containers() []string {
	out := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
