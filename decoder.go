package pcmwav

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Read extracts the header and samples of the wave data in r.
//
// The reader is rewound to its start first and is seeked back and forth
// between chunks, so it doesn't need to be positioned anywhere in particular.
// The first "fmt " chunk and the last "data" chunk of the file are used.
//
// Read fails when r errors, when the data isn't RIFF/WAVE, when the fmt or
// data chunk is missing or short, or when the header describes a format
// other than 8/16/24-bit PCM or 32-bit IEEE float.
func Read(r io.ReadSeeker) (Header, BitDepth, error) {
	c, err := readContainer(r)
	if err != nil {
		return Header{}, Empty(), err
	}

	head, err := c.header()
	if err != nil {
		return Header{}, Empty(), err
	}

	dataChunk, ok := c.last(riff.DataFormatID)
	if !ok {
		return Header{}, Empty(), fmt.Errorf("%w: %q", ErrMissingChunk, riff.DataFormatID[:])
	}

	raw, err := c.readContents(dataChunk)
	if err != nil {
		return Header{}, Empty(), err
	}

	track, err := DecodeSamples(head.AudioFormat, head.BitsPerSample, raw)
	if err != nil {
		return Header{}, Empty(), fmt.Errorf("could not parse audio data: %w", err)
	}

	return head, track, nil
}

// ReadHeader decodes and validates the fmt chunk of r without reading the
// sample data.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	c, err := readContainer(r)
	if err != nil {
		return Header{}, err
	}

	return c.header()
}

func (c *container) header() (Header, error) {
	fmtChunk, ok := c.first(riff.FmtID)
	if !ok {
		return Header{}, fmt.Errorf("%w: %q", ErrMissingChunk, riff.FmtID[:])
	}

	headerBytes, err := c.readContents(fmtChunk)
	if err != nil {
		return Header{}, err
	}

	head, err := ParseHeader(headerBytes)
	if err != nil {
		return Header{}, fmt.Errorf("failed to decode fmt chunk: %w", err)
	}

	switch head.AudioFormat {
	case WavFormatPCM, WavFormatIEEEFloat:
		return head, nil
	default:
		return Header{}, fmt.Errorf("%w: format tag %d, only uncompressed PCM and IEEE float are supported",
			ErrUnsupportedFormat, head.AudioFormat)
	}
}
