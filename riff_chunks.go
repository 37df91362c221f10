package pcmwav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
)

// chunkRef locates a top-level chunk payload inside a seekable source.
type chunkRef struct {
	ID [4]byte
	// size is the size declared in the chunk header, pad byte excluded.
	size int64
	// offset is the absolute position of the first payload byte.
	offset int64
}

// container is the outer RIFF chunk with the headers of its direct children.
type container struct {
	r      io.ReadSeeker
	parser *riff.Parser
	// end is where the container stops: the declared RIFF size capped to the
	// stream length.
	end    int64
	chunks []chunkRef
}

// readContainer checks the RIFF header and form type, then records the ID,
// size and payload offset of every top-level chunk without reading payloads.
func readContainer(r io.ReadSeeker) (*container, error) {
	streamLen, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to seek to the end of the stream: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek back to the start: %w", err)
	}

	c := &container{r: r, parser: riff.New(r)}

	id, size, err := c.parser.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return nil, fmt.Errorf("%w: outer chunk is %q (%w)", ErrMalformedContainer, id[:], riff.ErrFmtNotSupported)
	}

	err = binary.Read(r, binary.BigEndian, &c.parser.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to read form type: %w", err)
	}

	if c.parser.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: form type is %q", ErrMalformedContainer, c.parser.Format[:])
	}

	// Streaming writers may leave a 0xFFFFFFFF placeholder as RIFF size, so
	// the stream length wins when it is shorter than the declared size.
	c.end = min(int64(size)+8, streamLen)

	pos := int64(12)
	for pos+8 <= c.end {
		id, size, err := c.parser.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("error reading chunk header - %w", err)
		}

		pos += 8

		c.chunks = append(c.chunks, chunkRef{ID: id, size: int64(size), offset: pos})

		// all RIFF chunks must be word aligned, the pad byte is not part of
		// the declared size.
		pos += int64(size) + int64(size%2)
		if pos >= c.end {
			break
		}

		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to skip chunk %q: %w", id[:], err)
		}
	}

	return c, nil
}

// first returns the first chunk with the given ID in stream order.
func (c *container) first(id [4]byte) (chunkRef, bool) {
	for _, ch := range c.chunks {
		if ch.ID == id {
			return ch, true
		}
	}

	return chunkRef{}, false
}

// last returns the last chunk with the given ID in stream order.
func (c *container) last(id [4]byte) (chunkRef, bool) {
	for i := len(c.chunks) - 1; i >= 0; i-- {
		if c.chunks[i].ID == id {
			return c.chunks[i], true
		}
	}

	return chunkRef{}, false
}

// readContents seeks back to the chunk payload and reads all of it. A payload
// running past the end of the container fails with io.ErrUnexpectedEOF
// before anything is allocated.
func (c *container) readContents(ch chunkRef) ([]byte, error) {
	if ch.offset+ch.size > c.end {
		return nil, fmt.Errorf("failed to read chunk %q: declares %d bytes, %d available: %w",
			ch.ID[:], ch.size, max(c.end-ch.offset, 0), io.ErrUnexpectedEOF)
	}

	if _, err := c.r.Seek(ch.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to chunk %q: %w", ch.ID[:], err)
	}

	data := make([]byte, ch.size)
	if _, err := io.ReadFull(c.r, data); err != nil {
		return nil, fmt.Errorf("failed to read chunk %q: %w", ch.ID[:], err)
	}

	return data, nil
}

// containerWriter serializes a RIFF container into a seekable sink.
type containerWriter struct {
	w            io.WriteSeeker
	start        int64
	WrittenBytes int
}

// writeContainer writes a RIFF chunk of the given form type holding chunks in
// order. The RIFF size is patched once all chunks are written.
func writeContainer(w io.WriteSeeker, form [4]byte, chunks []RawChunk) error {
	payloadLens := make([]uint64, len(chunks))
	for i, chunk := range chunks {
		payloadLens[i] = uint64(len(chunk.Data))
	}

	if _, err := riffSize(payloadLens...); err != nil {
		return err
	}

	start, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("failed to get the current position: %w", err)
	}

	cw := &containerWriter{w: w, start: start}

	err = cw.addBE(riff.RiffID)
	if err != nil {
		return fmt.Errorf("failed to write the RIFF chunk ID: %w", err)
	}
	// file size uint32, to update later on.
	err = cw.addLE(uint32(4294967295))
	if err != nil {
		return fmt.Errorf("failed to write the RIFF chunk size: %w", err)
	}

	err = cw.addBE(form)
	if err != nil {
		return fmt.Errorf("failed to write the form type: %w", err)
	}

	for _, chunk := range chunks {
		if err := cw.writeRawChunk(chunk); err != nil {
			return err
		}
	}

	return cw.close()
}

// riffSize returns the size field of a RIFF chunk holding payloads of the
// given lengths, form type and pad bytes included.
func riffSize(payloadLens ...uint64) (uint32, error) {
	size := uint64(4)

	for _, n := range payloadLens {
		size += 8 + n + n%2
		if size > math.MaxUint32 {
			return 0, fmt.Errorf("%w: RIFF size exceeds %d bytes", ErrDataTooLarge, uint32(math.MaxUint32))
		}
	}

	return uint32(size), nil
}

func (cw *containerWriter) addLE(src any) error {
	cw.WrittenBytes += binary.Size(src)

	err := binary.Write(cw.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

func (cw *containerWriter) addBE(src any) error {
	cw.WrittenBytes += binary.Size(src)

	err := binary.Write(cw.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

func (cw *containerWriter) writeRawChunk(chunk RawChunk) error {
	size := chunk.Size()

	err := cw.addBE(chunk.ID)
	if err != nil {
		return fmt.Errorf("failed to write chunk id %q: %w", chunk.ID[:], err)
	}

	err = cw.addLE(size)
	if err != nil {
		return fmt.Errorf("failed to write chunk size %q: %w", chunk.ID[:], err)
	}

	if len(chunk.Data) > 0 {
		n, err := cw.w.Write(chunk.Data)
		cw.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write chunk payload %q: %w", chunk.ID[:], err)
		}
	}

	if size%2 == 1 {
		n, err := cw.w.Write([]byte{0})
		cw.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write chunk padding %q: %w", chunk.ID[:], err)
		}
	}

	return nil
}

// close goes back to write the total size in the RIFF header and leaves the
// sink positioned after the container.
func (cw *containerWriter) close() error {
	if _, err := cw.w.Seek(cw.start+4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	if err := binary.Write(cw.w, binary.LittleEndian, uint32(cw.WrittenBytes-8)); err != nil {
		return fmt.Errorf("%w when writing the total written bytes", err)
	}

	if _, err := cw.w.Seek(cw.start+int64(cw.WrittenBytes), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to end of container: %w", err)
	}

	return nil
}
