package pcmwav

import (
	"encoding/binary"
	"fmt"
)

const (
	// WavFormatPCM is the fmt chunk format tag for uncompressed integer PCM.
	WavFormatPCM uint16 = 0x01
	// WavFormatIEEEFloat is the fmt chunk format tag for IEEE-754 float samples.
	WavFormatIEEEFloat uint16 = 0x03

	// HeaderSize is the size in bytes of the fmt chunk payload read and written
	// by this package.
	HeaderSize = 16
)

// Header mirrors the 16-byte "fmt " chunk of a wave file.
//
// Only PCM and IEEE float are supported by Read and Write, but any format tag
// can be stored so the type stays usable for custom wave handling.
type Header struct {
	AudioFormat  uint16
	ChannelCount uint16
	SamplingRate uint32
	// BytesPerSecond and BytesPerSample are derived values. NewHeader computes
	// them, ParseHeader keeps whatever the stream contains.
	BytesPerSecond uint32
	BytesPerSample uint16
	BitsPerSample  uint16
}

// NewHeader creates a header and computes the derived byte rate and block
// alignment from the primary parameters. The bit depth is not validated.
func NewHeader(audioFormat, channelCount uint16, samplingRate uint32, bitsPerSample uint16) Header {
	bytesPerSample := (bitsPerSample >> 3) * channelCount

	return Header{
		AudioFormat:    audioFormat,
		ChannelCount:   channelCount,
		SamplingRate:   samplingRate,
		BytesPerSecond: uint32(bytesPerSample) * samplingRate,
		BytesPerSample: bytesPerSample,
		BitsPerSample:  bitsPerSample,
	}
}

// ParseHeader decodes the first 16 bytes of b. Extra bytes (such as a cbSize
// extension) are ignored and no consistency check is done on the fields.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, need %d", ErrHeaderTooShort, len(b), HeaderSize)
	}

	return Header{
		AudioFormat:    binary.LittleEndian.Uint16(b[0:2]),
		ChannelCount:   binary.LittleEndian.Uint16(b[2:4]),
		SamplingRate:   binary.LittleEndian.Uint32(b[4:8]),
		BytesPerSecond: binary.LittleEndian.Uint32(b[8:12]),
		BytesPerSample: binary.LittleEndian.Uint16(b[12:14]),
		BitsPerSample:  binary.LittleEndian.Uint16(b[14:16]),
	}, nil
}

// Bytes returns the on-disk layout of the header.
func (h Header) Bytes() [HeaderSize]byte {
	var out [HeaderSize]byte

	binary.LittleEndian.PutUint16(out[0:2], h.AudioFormat)
	binary.LittleEndian.PutUint16(out[2:4], h.ChannelCount)
	binary.LittleEndian.PutUint32(out[4:8], h.SamplingRate)
	binary.LittleEndian.PutUint32(out[8:12], h.BytesPerSecond)
	binary.LittleEndian.PutUint16(out[12:14], h.BytesPerSample)
	binary.LittleEndian.PutUint16(out[14:16], h.BitsPerSample)

	return out
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	b := h.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(data []byte) error {
	parsed, err := ParseHeader(data)
	if err != nil {
		return err
	}

	*h = parsed

	return nil
}

// Validate reports whether track is the sample variant this header describes.
// The empty variant never matches.
func (h Header) Validate(track BitDepth) error {
	if track.IsEmpty() {
		return ErrEmptyData
	}

	if track.AudioFormat() != h.AudioFormat || track.BitsPerSample() != h.BitsPerSample {
		return fmt.Errorf("%w: header is format %d/%d-bit, samples are %s",
			ErrFormatMismatch, h.AudioFormat, h.BitsPerSample, track.Kind())
	}

	return nil
}

// String implements the Stringer interface.
func (h Header) String() string {
	return fmt.Sprintf("%d Hz @ %d bits, %d channel(s), %d avg bytes/sec, format %s",
		h.SamplingRate, h.BitsPerSample, h.ChannelCount, h.BytesPerSecond, formatName(h.AudioFormat))
}

func formatName(audioFormat uint16) string {
	switch audioFormat {
	case WavFormatPCM:
		return "PCM"
	case WavFormatIEEEFloat:
		return "IEEE float"
	default:
		return fmt.Sprintf("tag %d", audioFormat)
	}
}
