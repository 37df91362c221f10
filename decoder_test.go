package pcmwav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"runtime"
	"testing"

	"github.com/go-audio/riff"
)

func TestReadFixtures(t *testing.T) {
	for _, fixture := range fixtureFiles {
		t.Run(fixture.path, func(t *testing.T) {
			head, track, err := ReadFile(fixture.path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}

			wantFormat := WavFormatPCM
			if fixture.kind == KindThirtyTwoFloat {
				wantFormat = WavFormatIEEEFloat
			}

			want := NewHeader(wantFormat, 2, 48000, fixture.bits)
			if head != want {
				t.Fatalf("header=%+v, want %+v", head, want)
			}

			if track.Kind() != fixture.kind {
				t.Fatalf("kind=%v, want %v", track.Kind(), fixture.kind)
			}

			if track.Len() != 960 {
				t.Fatalf("sample count=%d, want 960", track.Len())
			}
		})
	}
}

func TestReadFixtureSamples(t *testing.T) {
	_, track, err := ReadFile("fixtures/sine_16bit_48khz.wav")
	if err != nil {
		t.Fatal(err)
	}

	samples, ok := track.AsSixteen()
	if !ok {
		t.Fatalf("expected 16-bit samples, got %v", track)
	}

	want := []int16{0, 26214, 1509, 26170}
	for i, w := range want {
		if samples[i] != w {
			t.Fatalf("sample %d=%d, want %d", i, samples[i], w)
		}
	}

	_, track, err = ReadFile("fixtures/sine_24bit_48khz.wav")
	if err != nil {
		t.Fatal(err)
	}

	samples24, ok := track.AsTwentyFour()
	if !ok {
		t.Fatalf("expected 24-bit samples, got %v", track)
	}

	want24 := []int32{0x000000, 0x666666, 0x05E502, 0x663AEE}
	for i, w := range want24 {
		if samples24[i] != w {
			t.Fatalf("sample %d=%#x, want %#x", i, samples24[i], w)
		}
	}

	_, track, err = ReadFile("fixtures/sine_32bit_float_48khz.wav")
	if err != nil {
		t.Fatal(err)
	}

	floats, ok := track.AsThirtyTwoFloat()
	if !ok {
		t.Fatalf("expected float samples, got %v", track)
	}

	if floats[0] != 0 || floats[1] != 0.8 {
		t.Fatalf("first frame=%v, want [0 0.8]", floats[:2])
	}

	_, track, err = ReadFile("fixtures/sine_8bit_48khz.wav")
	if err != nil {
		t.Fatal(err)
	}

	samples8, ok := track.AsEight()
	if !ok {
		t.Fatalf("expected 8-bit samples, got %v", track)
	}

	if samples8[0] != 0x80 || samples8[1] != 0xE6 {
		t.Fatalf("first frame=% x, want 80 e6", samples8[:2])
	}
}

func TestReadHeader(t *testing.T) {
	f, err := os.Open("fixtures/sine_24bit_48khz.wav")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	head, err := ReadHeader(f)
	if err != nil {
		t.Fatal(err)
	}

	if want := NewHeader(WavFormatPCM, 2, 48000, 24); head != want {
		t.Fatalf("header=%+v, want %+v", head, want)
	}
}

func TestReadRewindsTheReader(t *testing.T) {
	data, err := os.ReadFile("fixtures/sine_16bit_48khz.wav")
	if err != nil {
		t.Fatal(err)
	}

	r := bytes.NewReader(data)
	if _, err := r.Seek(20, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Read(r); err != nil {
		t.Fatalf("Read from a positioned reader failed: %v", err)
	}
}

func TestReadChunkPolicy(t *testing.T) {
	pcm16 := NewHeader(WavFormatPCM, 1, 8000, 16)
	pcm8 := NewHeader(WavFormatPCM, 1, 8000, 8)

	tests := []struct {
		name   string
		chunks []testChunk
		header Header
		want   BitDepth
	}{
		{
			name:   "canonical",
			chunks: []testChunk{fmtTestChunk(pcm16), dataTestChunk([]byte{0x01, 0x00, 0x02, 0x00})},
			header: pcm16,
			want:   Sixteen([]int16{1, 2}),
		},
		{
			name:   "data before fmt",
			chunks: []testChunk{dataTestChunk([]byte{0x01, 0x00}), fmtTestChunk(pcm16)},
			header: pcm16,
			want:   Sixteen([]int16{1}),
		},
		{
			name: "unknown chunks are skipped",
			chunks: []testChunk{
				{id: "LIST", data: []byte("INFOISFT\x03\x00\x00\x00ab\x00")},
				fmtTestChunk(pcm16),
				{id: "fact", data: []byte{0x02, 0x00, 0x00, 0x00}},
				dataTestChunk([]byte{0x01, 0x00, 0x02, 0x00}),
				{id: "junk", data: []byte{0xAA}},
			},
			header: pcm16,
			want:   Sixteen([]int16{1, 2}),
		},
		{
			name:   "first fmt wins",
			chunks: []testChunk{fmtTestChunk(pcm8), fmtTestChunk(pcm16), dataTestChunk([]byte{0x01, 0x02})},
			header: pcm8,
			want:   Eight([]uint8{1, 2}),
		},
		{
			name: "last data wins",
			chunks: []testChunk{
				fmtTestChunk(pcm8),
				dataTestChunk([]byte{0x01}),
				dataTestChunk([]byte{0x07, 0x08, 0x09}),
			},
			header: pcm8,
			want:   Eight([]uint8{7, 8, 9}),
		},
		{
			name:   "odd data chunk is padded",
			chunks: []testChunk{fmtTestChunk(pcm8), dataTestChunk([]byte{0x01, 0x02, 0x03})},
			header: pcm8,
			want:   Eight([]uint8{1, 2, 3}),
		},
		{
			name:   "empty data chunk",
			chunks: []testChunk{fmtTestChunk(pcm16), dataTestChunk(nil)},
			header: pcm16,
			want:   Sixteen(nil),
		},
		{
			name: "extended fmt chunk",
			chunks: []testChunk{
				{id: "fmt ", data: append(append([]byte{}, fmtTestChunk(pcm16).data...), 0x00, 0x00)},
				dataTestChunk([]byte{0xFF, 0xFF}),
			},
			header: pcm16,
			want:   Sixteen([]int16{-1}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, track, err := Unmarshal(buildRIFF("WAVE", tt.chunks...))
			if err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if head != tt.header {
				t.Fatalf("header=%+v, want %+v", head, tt.header)
			}

			if !track.Equal(tt.want) {
				t.Fatalf("track=%v, want %v", track, tt.want)
			}
		})
	}
}

func TestReadPlaceholderRIFFSize(t *testing.T) {
	h := NewHeader(WavFormatPCM, 1, 8000, 16)
	data := buildRIFF("WAVE", fmtTestChunk(h), dataTestChunk([]byte{0x05, 0x00}))
	binary.LittleEndian.PutUint32(data[4:8], 0xFFFFFFFF)

	_, track, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !track.Equal(Sixteen([]int16{5})) {
		t.Fatalf("track=%v", track)
	}
}

func TestReadOversizedChunks(t *testing.T) {
	h := NewHeader(WavFormatPCM, 1, 8000, 16)

	t.Run("data size placeholder", func(t *testing.T) {
		data := buildRIFF("WAVE", fmtTestChunk(h), dataTestChunk([]byte{1, 0, 2, 0}))
		binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFFF)

		var before, after runtime.MemStats

		runtime.ReadMemStats(&before)

		_, track, err := Unmarshal(data)

		runtime.ReadMemStats(&after)

		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("err=%v, want io.ErrUnexpectedEOF", err)
		}

		if !track.IsEmpty() {
			t.Fatalf("track=%v, want empty", track)
		}

		if grown := after.TotalAlloc - before.TotalAlloc; grown > 1<<20 {
			t.Fatalf("decoding a %d byte stream allocated %d bytes", len(data), grown)
		}
	})

	t.Run("trailing chunk past the end", func(t *testing.T) {
		data := buildRIFF("WAVE", fmtTestChunk(h), dataTestChunk([]byte{3, 0}), testChunk{id: "junk", data: []byte{0, 0}})
		binary.LittleEndian.PutUint32(data[len(data)-6:], 0xFFFFFFFF)

		_, track, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if !track.Equal(Sixteen([]int16{3})) {
			t.Fatalf("track=%v", track)
		}
	})

	t.Run("fmt size placeholder", func(t *testing.T) {
		data := buildRIFF("WAVE", fmtTestChunk(h), dataTestChunk([]byte{3, 0}))
		binary.LittleEndian.PutUint32(data[16:20], 0xFFFFFFFF)

		if _, _, err := Unmarshal(data); err == nil {
			t.Fatal("expected an error for a fmt chunk running past the stream")
		}
	})
}

func TestReadErrors(t *testing.T) {
	pcm16 := NewHeader(WavFormatPCM, 1, 8000, 16)

	truncated := buildRIFF("WAVE", fmtTestChunk(pcm16), dataTestChunk([]byte{1, 0, 2, 0, 3, 0, 4, 0}))
	truncated = truncated[:len(truncated)-4]

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty input", nil, io.EOF},
		{"not RIFF", append([]byte("RIFX\x04\x00\x00\x00WAVE"), make([]byte, 8)...), ErrMalformedContainer},
		{"not RIFF sentinel from riff", append([]byte("FORM\x04\x00\x00\x00AIFF"), make([]byte, 8)...), riff.ErrFmtNotSupported},
		{"not WAVE", buildRIFF("AVI ", fmtTestChunk(pcm16), dataTestChunk([]byte{0, 0})), ErrMalformedContainer},
		{"missing form type", []byte("RIFF\x00\x00\x00\x00"), io.EOF},
		{"missing fmt", buildRIFF("WAVE", dataTestChunk([]byte{0, 0})), ErrMissingChunk},
		{"missing data", buildRIFF("WAVE", fmtTestChunk(pcm16)), ErrMissingChunk},
		{"short fmt", buildRIFF("WAVE", testChunk{id: "fmt ", data: make([]byte, 14)}, dataTestChunk([]byte{0, 0})), ErrHeaderTooShort},
		{
			"unsupported format tag",
			buildRIFF("WAVE", fmtTestChunk(NewHeader(6, 1, 8000, 8)), dataTestChunk([]byte{0, 0})),
			ErrUnsupportedFormat,
		},
		{
			"extensible format tag",
			buildRIFF("WAVE", fmtTestChunk(NewHeader(0xFFFE, 1, 8000, 16)), dataTestChunk([]byte{0, 0})),
			ErrUnsupportedFormat,
		},
		{
			"12-bit PCM",
			buildRIFF("WAVE", fmtTestChunk(NewHeader(WavFormatPCM, 1, 8000, 12)), dataTestChunk([]byte{0, 0})),
			ErrUnsupportedBitDepth,
		},
		{
			"64-bit float",
			buildRIFF("WAVE", fmtTestChunk(NewHeader(WavFormatIEEEFloat, 1, 8000, 64)), dataTestChunk(make([]byte, 8))),
			ErrUnsupportedBitDepth,
		},
		{"truncated data", truncated, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, track, err := Unmarshal(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v, want errors.Is(%v)", err, tt.wantErr)
			}

			if head != (Header{}) || !track.IsEmpty() {
				t.Fatalf("failed read returned %+v, %v", head, track)
			}
		})
	}
}

type failingReadSeeker struct {
	io.ReadSeeker
	failAfter int
	read      int
}

var errInjected = errors.New("injected read failure")

func (f *failingReadSeeker) Read(p []byte) (int, error) {
	if f.read >= f.failAfter {
		return 0, errInjected
	}

	if remaining := f.failAfter - f.read; len(p) > remaining {
		p = p[:remaining]
	}

	n, err := f.ReadSeeker.Read(p)
	f.read += n

	return n, err
}

func TestReadPropagatesReaderErrors(t *testing.T) {
	data, err := os.ReadFile("fixtures/sine_8bit_48khz.wav")
	if err != nil {
		t.Fatal(err)
	}

	for _, failAfter := range []int{0, 4, 12, 30, 50} {
		r := &failingReadSeeker{ReadSeeker: bytes.NewReader(data), failAfter: failAfter}

		_, _, err := Read(r)
		if !errors.Is(err, errInjected) {
			t.Fatalf("failAfter=%d: err=%v, want the injected error", failAfter, err)
		}
	}
}

func BenchmarkRead(b *testing.B) {
	for _, fixture := range fixtureFiles {
		data, err := os.ReadFile(fixture.path)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fixture.path, func(b *testing.B) {
			b.SetBytes(int64(len(data)))

			for i := 0; i < b.N; i++ {
				if _, _, err := Unmarshal(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
