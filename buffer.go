package pcmwav

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/audio"
)

// SignExtended24 returns the 24-bit samples as two's complement values, so
// negative samples come out negative. The stored containers are not changed.
func (b BitDepth) SignExtended24() ([]int32, bool) {
	samples, ok := b.AsTwentyFour()
	if !ok {
		return nil, false
	}

	out := make([]int32, len(samples))

	var tmp [4]byte

	for i, s := range samples {
		binary.LittleEndian.PutUint32(tmp[:], uint32(s))
		out[i] = audio.Int24LETo32(tmp[:3])
	}

	return out, true
}

// AsIntBuffer converts integer PCM samples into a go-audio buffer using the
// channel count and sampling rate of h. 8-bit samples stay unsigned and 24-bit
// samples are sign extended. Float samples are rejected.
func (b BitDepth) AsIntBuffer(h Header) (*audio.IntBuffer, error) {
	buf := &audio.IntBuffer{
		Format:         headerAudioFormat(h),
		SourceBitDepth: int(b.BitsPerSample()),
	}

	switch b.Kind() {
	case KindEmpty:
		return nil, ErrEmptyData
	case KindEight:
		samples, _ := b.AsEight()

		buf.Data = make([]int, len(samples))
		for i, s := range samples {
			buf.Data[i] = int(s)
		}
	case KindSixteen:
		samples, _ := b.AsSixteen()

		buf.Data = make([]int, len(samples))
		for i, s := range samples {
			buf.Data[i] = int(s)
		}
	case KindTwentyFour:
		samples, _ := b.SignExtended24()

		buf.Data = make([]int, len(samples))
		for i, s := range samples {
			buf.Data[i] = int(s)
		}
	case KindThirtyTwoFloat:
		return nil, fmt.Errorf("%w: %s has no integer representation", ErrUnsupportedFormat, b.Kind())
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, b.Kind())
	}

	return buf, nil
}

// AsFloat32Buffer converts the samples into a go-audio float buffer with
// values in [-1, 1], the way the go-audio wav decoder normalizes PCM.
func (b BitDepth) AsFloat32Buffer(h Header) (*audio.Float32Buffer, error) {
	buf := &audio.Float32Buffer{
		Format:         headerAudioFormat(h),
		SourceBitDepth: int(b.BitsPerSample()),
	}

	switch b.Kind() {
	case KindEmpty:
		return nil, ErrEmptyData
	case KindEight, KindSixteen, KindTwentyFour:
		intBuf, err := b.AsIntBuffer(h)
		if err != nil {
			return nil, err
		}

		buf.Data = make([]float32, len(intBuf.Data))
		for i, s := range intBuf.Data {
			buf.Data[i] = normalizePCMInt(s, buf.SourceBitDepth)
		}
	case KindThirtyTwoFloat:
		samples, _ := b.AsThirtyTwoFloat()

		buf.Data = make([]float32, len(samples))
		for i, s := range samples {
			buf.Data[i] = clampFloat32(s, -1, 1)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, b.Kind())
	}

	return buf, nil
}

// FromFloat32Buffer quantizes normalized samples into the variant described
// by h. Values outside [-1, 1] are clamped.
func FromFloat32Buffer(buf *audio.Float32Buffer, h Header) (BitDepth, error) {
	if buf == nil {
		return Empty(), ErrEmptyData
	}

	switch h.AudioFormat {
	case WavFormatPCM:
		switch h.BitsPerSample {
		case 8:
			out := make([]uint8, len(buf.Data))
			for i, v := range buf.Data {
				out[i] = float32ToPCMUint8(v)
			}

			return Eight(out), nil
		case 16:
			out := make([]int16, len(buf.Data))
			for i, v := range buf.Data {
				out[i] = int16(float32ToPCMInt32(v, 16))
			}

			return Sixteen(out), nil
		case 24:
			out := make([]int32, len(buf.Data))
			for i, v := range buf.Data {
				b := audio.Int32toInt24LEBytes(float32ToPCMInt32(v, 24))
				out[i] = int32(binary.LittleEndian.Uint32([]byte{b[0], b[1], b[2], 0}))
			}

			return TwentyFour(out), nil
		default:
			return Empty(), fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedBitDepth, h.BitsPerSample)
		}
	case WavFormatIEEEFloat:
		if h.BitsPerSample != 32 {
			return Empty(), fmt.Errorf("%w: %d-bit IEEE float (%w)", ErrUnsupportedBitDepth, h.BitsPerSample, ErrUnsupportedFormat)
		}

		out := make([]float32, len(buf.Data))
		for i, v := range buf.Data {
			out[i] = clampFloat32(v, -1, 1)
		}

		return ThirtyTwoFloat(out), nil
	default:
		return Empty(), fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, h.AudioFormat)
	}
}

func headerAudioFormat(h Header) *audio.Format {
	return &audio.Format{
		NumChannels: int(h.ChannelCount),
		SampleRate:  int(h.SamplingRate),
	}
}
