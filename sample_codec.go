package pcmwav

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodeSamples converts the raw bytes of a data chunk into the sample variant
// selected by the format tag and bit depth.
//
// Trailing bytes that don't form a complete sample are dropped. A successful
// decode never returns the empty variant, even for an empty data chunk.
func DecodeSamples(audioFormat, bitsPerSample uint16, raw []byte) (BitDepth, error) {
	switch audioFormat {
	case WavFormatPCM:
		switch bitsPerSample {
		case 8:
			return Eight(append(make([]uint8, 0, len(raw)), raw...)), nil
		case 16:
			return Sixteen(decodeInt16LE(raw)), nil
		case 24:
			return TwentyFour(decodeInt24LE(raw)), nil
		default:
			return Empty(), fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedBitDepth, bitsPerSample)
		}
	case WavFormatIEEEFloat:
		if bitsPerSample != 32 {
			return Empty(), fmt.Errorf("%w: %d-bit IEEE float (%w)", ErrUnsupportedBitDepth, bitsPerSample, ErrUnsupportedFormat)
		}

		return ThirtyTwoFloat(decodeFloat32LE(raw)), nil
	default:
		return Empty(), fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, audioFormat)
	}
}

// EncodeSamples converts samples into the little-endian byte layout of a data
// chunk. The empty variant is rejected with ErrEmptyData.
func EncodeSamples(track BitDepth) ([]byte, error) {
	switch track.Kind() {
	case KindEmpty:
		return nil, ErrEmptyData
	case KindEight:
		samples, _ := track.AsEight()
		return append(make([]byte, 0, len(samples)), samples...), nil
	case KindSixteen:
		samples, _ := track.AsSixteen()
		return encodeInt16LE(samples), nil
	case KindTwentyFour:
		samples, _ := track.AsTwentyFour()
		return encodeInt24LE(samples), nil
	case KindThirtyTwoFloat:
		samples, _ := track.AsThirtyTwoFloat()
		return encodeFloat32LE(samples), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, track.Kind())
	}
}

func decodeInt16LE(raw []byte) []int16 {
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return out
}

// decodeInt24LE zero-extends each 3-byte group into the low bytes of an int32.
// encodeInt24LE drops that high byte again, so the pair is byte exact.
func decodeInt24LE(raw []byte) []int32 {
	out := make([]int32, len(raw)/3)
	for i := range out {
		b := raw[i*3 : i*3+3]
		out[i] = int32(binary.LittleEndian.Uint32([]byte{b[0], b[1], b[2], 0}))
	}

	return out
}

func decodeFloat32LE(raw []byte) []float32 {
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}

	return out
}

func encodeInt16LE(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	return out
}

func encodeInt24LE(samples []int32) []byte {
	out := make([]byte, len(samples)*3)

	var tmp [4]byte

	for i, s := range samples {
		binary.LittleEndian.PutUint32(tmp[:], uint32(s))
		copy(out[i*3:], tmp[:3])
	}

	return out
}

func encodeFloat32LE(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}

	return out
}
