package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// WAV format constants.
const (
	wavHeaderSize      = 44 // Canonical RIFF/WAVE header size in bytes
	wavRiffHeaderSize  = 36 // RIFF chunk size minus the data payload
	wavPCMSubchunkSize = 16 // fmt subchunk size for linear PCM
	wavPCMFormatCode   = 1  // Audio format code for linear PCM

	bitsPerByte = 8

	// Full-scale magnitudes per bit depth. Encoding scales by the maximum
	// positive value; decoding normalizes by the maximum magnitude.
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
	divInt16 = 32768.0
	divInt24 = 8388608.0
	divInt32 = 2147483648.0

	wavMaxSampleRate = 192000
	wavMaxChannels   = 8
)

// WAVCodec implements the canonical RIFF/WAVE linear PCM container with a
// fixed 44-byte header and interleaved little-endian samples, channel
// fastest. Decode assumes the canonical layout (no extraneous chunks before
// the data chunk); files with extra chunks such as LIST metadata are
// rejected rather than skipped.
type WAVCodec struct{}

// Name returns the codec name.
func (*WAVCodec) Name() string { return "PCM WAV" }

// Container returns the container identifier.
func (*WAVCodec) Container() string { return "wav" }

// Extensions returns the associated file extensions.
func (*WAVCodec) Extensions() []string { return []string{"wav", "wave"} }

// Capabilities reports the codec's limits.
func (*WAVCodec) Capabilities() Capabilities {
	return Capabilities{
		MaxSampleRate: wavMaxSampleRate,
		MaxChannels:   wavMaxChannels,
		BitDepths:     []int{16, 24, 32},
		Lossless:      true,
		CanEncode:     true,
	}
}

// Encode serializes planar samples into a canonical WAV byte buffer.
// Samples are scaled from [-1, 1] to the integer full-scale range of the
// target bit depth and clamped.
func (c *WAVCodec) Encode(channels [][]float64, format Format) ([]byte, error) {
	if !c.Capabilities().SupportsBitDepth(format.BitDepth) {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, format.BitDepth)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels to encode", ErrMalformedData)
	}

	numFrames := len(channels[0])
	for ch, samples := range channels {
		if len(samples) != numFrames {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrMalformedData, ch, len(samples), numFrames)
		}
	}

	bytesPerSample := format.BitDepth / bitsPerByte
	blockAlign := len(channels) * bytesPerSample
	dataSize := numFrames * blockAlign

	buf := make([]byte, wavHeaderSize+dataSize)
	writeWAVHeader(buf, format.SampleRate, len(channels), format.BitDepth, dataSize)

	offset := wavHeaderSize
	for i := 0; i < numFrames; i++ {
		for ch := range channels {
			writePCMSample(buf[offset:], channels[ch][i], format.BitDepth)
			offset += bytesPerSample
		}
	}

	return buf, nil
}

// Decode parses a canonical WAV byte buffer into planar samples normalized
// by the bit depth's maximum magnitude.
func (c *WAVCodec) Decode(data []byte) ([][]float64, Format, error) {
	if len(data) < wavHeaderSize {
		return nil, Format{}, fmt.Errorf("%w: %d bytes is shorter than the WAV header", ErrMalformedData, len(data))
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, Format{}, fmt.Errorf("%w: missing RIFF/WAVE magic", ErrMalformedData)
	}
	if string(data[12:16]) != "fmt " {
		return nil, Format{}, fmt.Errorf("%w: fmt chunk not at canonical offset", ErrMalformedData)
	}
	if string(data[36:40]) != "data" {
		return nil, Format{}, fmt.Errorf("%w: data chunk not at canonical offset", ErrMalformedData)
	}

	if code := binary.LittleEndian.Uint16(data[20:22]); code != wavPCMFormatCode {
		return nil, Format{}, fmt.Errorf("%w: audio format code %d is not linear PCM", ErrMalformedData, code)
	}

	format := Format{
		Channels:   int(binary.LittleEndian.Uint16(data[22:24])),
		SampleRate: int(binary.LittleEndian.Uint32(data[24:28])),
		BitDepth:   int(binary.LittleEndian.Uint16(data[34:36])),
	}
	if format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, Format{}, fmt.Errorf("%w: invalid channel count or sample rate", ErrMalformedData)
	}
	if !c.Capabilities().SupportsBitDepth(format.BitDepth) {
		return nil, Format{}, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, format.BitDepth)
	}

	dataSize := int(binary.LittleEndian.Uint32(data[40:44]))
	if dataSize > len(data)-wavHeaderSize {
		dataSize = len(data) - wavHeaderSize
	}

	bytesPerSample := format.BitDepth / bitsPerByte
	blockAlign := format.Channels * bytesPerSample
	numFrames := dataSize / blockAlign

	channels := make([][]float64, format.Channels)
	for ch := range channels {
		channels[ch] = make([]float64, numFrames)
	}

	offset := wavHeaderSize
	for i := 0; i < numFrames; i++ {
		for ch := 0; ch < format.Channels; ch++ {
			channels[ch][i] = readPCMSample(data[offset:], format.BitDepth)
			offset += bytesPerSample
		}
	}

	return channels, format, nil
}

// writeWAVHeader fills the fixed 44-byte canonical header.
func writeWAVHeader(buf []byte, sampleRate, numChannels, bitDepth, dataSize int) {
	bytesPerSample := bitDepth / bitsPerByte
	blockAlign := numChannels * bytesPerSample
	byteRate := sampleRate * blockAlign

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(wavRiffHeaderSize+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(buf[20:22], wavPCMFormatCode)
	binary.LittleEndian.PutUint16(buf[22:24], uint16(numChannels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(bitDepth))
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
}

// writePCMSample quantizes one float sample into little-endian signed PCM.
func writePCMSample(dst []byte, sample float64, bitDepth int) {
	switch bitDepth {
	case 16:
		v := int16(clampScale(sample, maxInt16))
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case 24:
		v := int32(clampScale(sample, maxInt24))
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v >> 16)
	case 32:
		v := int32(clampScale(sample, maxInt32))
		binary.LittleEndian.PutUint32(dst, uint32(v))
	}
}

// readPCMSample reads one little-endian signed PCM sample and normalizes it
// to the float domain.
func readPCMSample(src []byte, bitDepth int) float64 {
	switch bitDepth {
	case 16:
		v := int16(binary.LittleEndian.Uint16(src))
		return float64(v) / divInt16
	case 24:
		v := int32(src[0]) | int32(src[1])<<8 | int32(src[2])<<16
		// Sign-extend from 24 to 32 bits.
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF
		}
		return float64(v) / divInt24
	case 32:
		v := int32(binary.LittleEndian.Uint32(src))
		return float64(v) / divInt32
	}
	return 0
}

// clampScale scales a [-1, 1] sample to the integer full-scale range,
// rounding to nearest and clamping overshoot.
func clampScale(sample, maxVal float64) float64 {
	v := math.Round(sample * maxVal)
	if v > maxVal {
		return maxVal
	}
	if v < -maxVal-1 {
		return -maxVal - 1
	}
	return v
}
