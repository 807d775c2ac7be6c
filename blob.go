package blobstore

import "github.com/pkg/errors"

// ChunkSource produces the pieces of a logically contiguous byte sequence,
// one chunk per call.
// A zero-length chunk marks the end of the sequence,
// and every later call must also return a zero-length chunk.
type ChunkSource interface {
	NextChunk() []byte
}

// ChunkFunc is a function implementing ChunkSource.
type ChunkFunc func() []byte

// NextChunk implements ChunkSource.
func (f ChunkFunc) NextChunk() []byte { return f() }

// Drain pulls every chunk from src and returns their concatenation.
// The chunks are copied, so src may reuse its buffers.
//
// If max is positive and the content grows beyond max bytes,
// Drain stops reading and returns an error wrapping ErrTooLarge.
func Drain(src ChunkSource, max int64) ([]byte, error) {
	var contents []byte
	for {
		chunk := src.NextChunk()
		if len(chunk) == 0 {
			return contents, nil
		}
		if max > 0 && int64(len(contents))+int64(len(chunk)) > max {
			return nil, errors.Wrapf(ErrTooLarge, "limit is %d bytes", max)
		}
		contents = append(contents, chunk...)
	}
}
