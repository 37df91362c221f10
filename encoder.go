package pcmwav

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Write serializes h and track as a RIFF/WAVE stream holding a "fmt " chunk
// followed by a "data" chunk, and nothing else.
//
// The writer needs to be seekable so the RIFF size can be filled in after
// the chunks are written. Nothing is written when track is empty or doesn't
// match the format and bit depth of h.
func Write(h Header, track BitDepth, w io.WriteSeeker) error {
	if err := h.Validate(track); err != nil {
		return err
	}

	headerBytes := h.Bytes()

	data, err := EncodeSamples(track)
	if err != nil {
		return err
	}

	chunks := []RawChunk{
		{ID: riff.FmtID, Data: headerBytes[:]},
		{ID: riff.DataFormatID, Data: data},
	}

	if err := writeContainer(w, riff.WavFormatID, chunks); err != nil {
		return fmt.Errorf("failed to write wave data: %w", err)
	}

	return nil
}
