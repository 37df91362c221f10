// Package pcmwav reads and writes uncompressed wave files.
//
// It supports 8, 16 and 24-bit integer PCM and 32-bit IEEE float samples, any
// number of channels, and only the "fmt " and "data" chunks. Compressed
// formats and metadata chunks are not supported.
//
// Read returns the format header and the interleaved samples held in a
// BitDepth, which is one of Eight, Sixteen, TwentyFour or ThirtyTwoFloat.
// Write produces the exact same bytes back from those two values:
//
//	head, track, err := pcmwav.ReadFile("sine.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = pcmwav.WriteFile("output.wav", head, track)
//
// 24-bit samples are stored in the low three bytes of an int32 without sign
// extension, which keeps the encode/decode pair byte exact. Use
// BitDepth.SignExtended24 or BitDepth.AsIntBuffer for numeric values.
package pcmwav
