package pcmwav

import (
	"errors"
	"time"
)

var (
	// ErrMalformedContainer is returned when the stream isn't a RIFF chunk of
	// form type "WAVE".
	ErrMalformedContainer = errors.New("RIFF file type not \"WAVE\"")
	// ErrMissingChunk is returned when the "fmt " or "data" chunk is absent.
	ErrMissingChunk = errors.New("RIFF data is missing a required chunk")
	// ErrHeaderTooShort is returned when fewer than 16 bytes are available
	// for the fmt chunk.
	ErrHeaderTooShort = errors.New("fmt chunk is smaller than the minimum-required 16 bytes")
	// ErrUnsupportedFormat is returned for format tags other than PCM and
	// IEEE float.
	ErrUnsupportedFormat = errors.New("unsupported data format")
	// ErrUnsupportedBitDepth is returned for bit depths other than 8, 16 and
	// 24-bit PCM or 32-bit float.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	// ErrEmptyData is returned when encoding the empty BitDepth variant.
	ErrEmptyData = errors.New("empty audio data given")
	// ErrFormatMismatch is returned when samples don't match the header they
	// are written with.
	ErrFormatMismatch = errors.New("samples don't match the header format")
	// ErrDataTooLarge is returned when the samples don't fit the 32-bit size
	// fields of a RIFF file.
	ErrDataTooLarge = errors.New("audio data too large for a RIFF file")
	// ErrUnknownKind is returned for a BitDepth kind this package doesn't know.
	ErrUnknownKind = errors.New("unknown bit depth kind")
)

// Duration returns the playing time of track when played with h. Incomplete
// trailing frames are not counted.
func Duration(h Header, track BitDepth) time.Duration {
	if h.ChannelCount == 0 || h.SamplingRate == 0 {
		return 0
	}

	frames := int64(track.Len() / int(h.ChannelCount))
	rate := int64(h.SamplingRate)

	// whole seconds and the remainder are scaled apart so long tracks
	// neither accumulate rounding error nor overflow.
	return time.Duration(frames/rate)*time.Second + time.Duration(frames%rate)*time.Second/time.Duration(rate)
}
