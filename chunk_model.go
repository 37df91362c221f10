package pcmwav

// RawChunk is a RIFF chunk as handed to the container writer: a four
// character ID and its payload.
type RawChunk struct {
	ID   [4]byte
	Data []byte
}

// Size returns the payload size written in the chunk header. The pad byte
// for odd sizes is not included.
func (c RawChunk) Size() uint32 {
	return uint32(len(c.Data))
}
