package pcmwav

import (
	"bytes"
	"fmt"
	"os"

	"github.com/orcaman/writerseeker"
)

// ReadFile opens the wave file at path and decodes it with Read.
func ReadFile(path string) (Header, BitDepth, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, Empty(), err
	}
	defer f.Close()

	return Read(f)
}

// WriteFile creates (or truncates) the file at path and encodes h and track
// into it with Write. The file is synced before it is closed.
func WriteFile(path string, h Header, track BitDepth) error {
	// fail before touching the file system
	if err := h.Validate(track); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(h, track, f); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}

	return f.Close()
}

// Unmarshal decodes an in-memory wave file.
func Unmarshal(data []byte) (Header, BitDepth, error) {
	return Read(bytes.NewReader(data))
}

// Marshal encodes h and track into an in-memory wave file.
func Marshal(h Header, track BitDepth) ([]byte, error) {
	ws := &writerseeker.WriterSeeker{}

	if err := Write(h, track, ws); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(ws.Reader()); err != nil {
		return nil, fmt.Errorf("failed to read back encoded data: %w", err)
	}

	return buf.Bytes(), nil
}
