package pcmwav

import (
	"fmt"
	"math"
	"slices"
)

// Kind identifies which sample container a BitDepth holds.
type Kind uint8

const (
	// KindEmpty is the zero value: nothing decoded, or nothing to encode.
	KindEmpty Kind = iota
	// KindEight holds unsigned 8-bit PCM samples.
	KindEight
	// KindSixteen holds signed 16-bit PCM samples.
	KindSixteen
	// KindTwentyFour holds 24-bit PCM samples in 32-bit containers.
	KindTwentyFour
	// KindThirtyTwoFloat holds 32-bit IEEE float samples.
	KindThirtyTwoFloat
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindEight:
		return "8-bit PCM"
	case KindSixteen:
		return "16-bit PCM"
	case KindTwentyFour:
		return "24-bit PCM"
	case KindThirtyTwoFloat:
		return "32-bit IEEE float"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// BitDepth holds interleaved samples for exactly one supported bit depth.
// The zero value is the empty variant.
//
// 24-bit samples keep the three little-endian bytes of each sample in the low
// three bytes of the int32, with a zero high byte. Negative samples therefore
// read as large positive numbers; use SignExtended24 for the numeric value.
type BitDepth struct {
	kind Kind

	eight          []uint8
	sixteen        []int16
	twentyFour     []int32
	thirtyTwoFloat []float32
}

// Eight wraps unsigned 8-bit samples.
func Eight(samples []uint8) BitDepth {
	return BitDepth{kind: KindEight, eight: samples}
}

// Sixteen wraps signed 16-bit samples.
func Sixteen(samples []int16) BitDepth {
	return BitDepth{kind: KindSixteen, sixteen: samples}
}

// TwentyFour wraps 24-bit samples stored in the low three bytes of each int32.
func TwentyFour(samples []int32) BitDepth {
	return BitDepth{kind: KindTwentyFour, twentyFour: samples}
}

// ThirtyTwoFloat wraps 32-bit float samples.
func ThirtyTwoFloat(samples []float32) BitDepth {
	return BitDepth{kind: KindThirtyTwoFloat, thirtyTwoFloat: samples}
}

// Empty returns the empty variant.
func Empty() BitDepth {
	return BitDepth{}
}

// Kind returns the active variant.
func (b BitDepth) Kind() Kind { return b.kind }

// IsEmpty reports whether b is the empty variant.
func (b BitDepth) IsEmpty() bool { return b.kind == KindEmpty }

// IsEight reports whether b holds 8-bit samples.
func (b BitDepth) IsEight() bool { return b.kind == KindEight }

// IsSixteen reports whether b holds 16-bit samples.
func (b BitDepth) IsSixteen() bool { return b.kind == KindSixteen }

// IsTwentyFour reports whether b holds 24-bit samples.
func (b BitDepth) IsTwentyFour() bool { return b.kind == KindTwentyFour }

// IsThirtyTwoFloat reports whether b holds 32-bit float samples.
func (b BitDepth) IsThirtyTwoFloat() bool { return b.kind == KindThirtyTwoFloat }

// AsEight returns the 8-bit samples if b holds them.
func (b BitDepth) AsEight() ([]uint8, bool) {
	return b.eight, b.kind == KindEight
}

// AsSixteen returns the 16-bit samples if b holds them.
func (b BitDepth) AsSixteen() ([]int16, bool) {
	return b.sixteen, b.kind == KindSixteen
}

// AsTwentyFour returns the raw 24-bit containers if b holds them.
func (b BitDepth) AsTwentyFour() ([]int32, bool) {
	return b.twentyFour, b.kind == KindTwentyFour
}

// AsThirtyTwoFloat returns the float samples if b holds them.
func (b BitDepth) AsThirtyTwoFloat() ([]float32, bool) {
	return b.thirtyTwoFloat, b.kind == KindThirtyTwoFloat
}

// Len returns the number of samples across all channels.
func (b BitDepth) Len() int {
	switch b.kind {
	case KindEmpty:
		return 0
	case KindEight:
		return len(b.eight)
	case KindSixteen:
		return len(b.sixteen)
	case KindTwentyFour:
		return len(b.twentyFour)
	case KindThirtyTwoFloat:
		return len(b.thirtyTwoFloat)
	default:
		panic(fmt.Sprintf("pcmwav: %v", b.kind))
	}
}

// BitsPerSample returns the bit depth matching the variant, 0 when empty.
func (b BitDepth) BitsPerSample() uint16 {
	switch b.kind {
	case KindEmpty:
		return 0
	case KindEight:
		return 8
	case KindSixteen:
		return 16
	case KindTwentyFour:
		return 24
	case KindThirtyTwoFloat:
		return 32
	default:
		panic(fmt.Sprintf("pcmwav: %v", b.kind))
	}
}

// AudioFormat returns the fmt chunk format tag matching the variant, 0 when
// empty.
func (b BitDepth) AudioFormat() uint16 {
	switch b.kind {
	case KindEmpty:
		return 0
	case KindEight, KindSixteen, KindTwentyFour:
		return WavFormatPCM
	case KindThirtyTwoFloat:
		return WavFormatIEEEFloat
	default:
		panic(fmt.Sprintf("pcmwav: %v", b.kind))
	}
}

// Equal reports whether both values hold the same variant and samples.
// Float samples are compared bit for bit so NaN payloads compare equal.
func (b BitDepth) Equal(other BitDepth) bool {
	if b.kind != other.kind {
		return false
	}

	switch b.kind {
	case KindEmpty:
		return true
	case KindEight:
		return slices.Equal(b.eight, other.eight)
	case KindSixteen:
		return slices.Equal(b.sixteen, other.sixteen)
	case KindTwentyFour:
		return slices.Equal(b.twentyFour, other.twentyFour)
	case KindThirtyTwoFloat:
		if len(b.thirtyTwoFloat) != len(other.thirtyTwoFloat) {
			return false
		}

		for i := range b.thirtyTwoFloat {
			if math.Float32bits(b.thirtyTwoFloat[i]) != math.Float32bits(other.thirtyTwoFloat[i]) {
				return false
			}
		}

		return true
	default:
		panic(fmt.Sprintf("pcmwav: %v", b.kind))
	}
}

// String implements the Stringer interface.
func (b BitDepth) String() string {
	if b.kind == KindEmpty {
		return "empty"
	}

	return fmt.Sprintf("%s, %d samples", b.kind, b.Len())
}
