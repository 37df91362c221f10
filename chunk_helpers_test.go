package pcmwav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func parseWavChunksFromFile(path string) ([]testChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parseWavChunks(data)
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

// buildRIFF assembles a RIFF stream of the given form type. Chunk sizes are
// taken from the payload length and odd payloads are padded.
func buildRIFF(form string, chunks ...testChunk) []byte {
	body := []byte(form)

	for _, ch := range chunks {
		var hdr [8]byte

		copy(hdr[:4], ch.id)
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(ch.data)))
		body = append(body, hdr[:]...)
		body = append(body, ch.data...)

		if len(ch.data)%2 == 1 {
			body = append(body, 0)
		}
	}

	out := make([]byte, 8, 8+len(body))
	copy(out, "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))

	return append(out, body...)
}

func fmtTestChunk(h Header) testChunk {
	b := h.Bytes()
	return testChunk{id: "fmt ", data: b[:]}
}

func dataTestChunk(data []byte) testChunk {
	return testChunk{id: "data", data: data}
}

var fixtureFiles = []struct {
	path string
	kind Kind
	bits uint16
}{
	{"fixtures/sine_8bit_48khz.wav", KindEight, 8},
	{"fixtures/sine_16bit_48khz.wav", KindSixteen, 16},
	{"fixtures/sine_24bit_48khz.wav", KindTwentyFour, 24},
	{"fixtures/sine_32bit_float_48khz.wav", KindThirtyTwoFloat, 32},
}
