// Package multibuf implements chunk sources for blob uploads:
// byte sequences held as a list of discontiguous chunks.
package multibuf

import (
	"io"

	"github.com/bobg/hashsplit"
	"github.com/pkg/errors"

	"github.com/bobg/blobstore"
)

var _ blobstore.ChunkSource = &MultiBuf{}

// DefaultChunkSize is the chunk size FromReader uses when none is given.
const DefaultChunkSize = 64 * 1024

// MultiBuf is a byte sequence split into chunks,
// with a cursor for reading them out in order.
type MultiBuf struct {
	chunks [][]byte
	pos    int
}

// New produces a MultiBuf over the given chunks.
// Empty chunks are dropped,
// since an empty chunk would end the sequence early.
func New(chunks ...[]byte) *MultiBuf {
	m := &MultiBuf{}
	for _, c := range chunks {
		if len(c) > 0 {
			m.chunks = append(m.chunks, c)
		}
	}
	return m
}

// NextChunk implements blobstore.ChunkSource.
func (m *MultiBuf) NextChunk() []byte {
	if m.pos >= len(m.chunks) {
		return nil
	}
	chunk := m.chunks[m.pos]
	m.pos++
	return chunk
}

// Len is the total number of bytes in all chunks.
func (m *MultiBuf) Len() int {
	var n int
	for _, c := range m.chunks {
		n += len(c)
	}
	return n
}

// NumChunks is the number of chunks in m.
func (m *MultiBuf) NumChunks() int {
	return len(m.chunks)
}

// Reset rewinds m to its first chunk.
func (m *MultiBuf) Reset() {
	m.pos = 0
}

// FromReader reads r to the end in chunks of at most size bytes.
// A non-positive size means DefaultChunkSize.
func FromReader(r io.Reader, size int) (*MultiBuf, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}
	m := &MultiBuf{}
	for {
		buf := make([]byte, size)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			m.chunks = append(m.chunks, buf[:n])
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return m, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading chunk")
		}
	}
}

// Split reads r to the end,
// dividing it into content-defined chunks with a hashsplit.Splitter.
// Chunk boundaries depend only on the content,
// so equal runs of input tend to produce equal chunks.
func Split(r io.Reader) (*MultiBuf, error) {
	m := &MultiBuf{}
	spl := hashsplit.NewSplitter(func(chunk []byte, _ uint) error {
		// The splitter may reuse its buffer.
		c := make([]byte, len(chunk))
		copy(c, chunk)
		if len(c) > 0 {
			m.chunks = append(m.chunks, c)
		}
		return nil
	})
	spl.MinSize = 1024
	spl.SplitBits = 14

	if _, err := io.Copy(spl, r); err != nil {
		return nil, errors.Wrap(err, "splitting input")
	}
	if err := spl.Close(); err != nil {
		return nil, errors.Wrap(err, "flushing splitter")
	}
	return m, nil
}
