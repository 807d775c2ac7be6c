package blobstore

import (
	"context"
	"errors"
)

// Client is a blob store.
// It stores byte sequences - "blobs" - of arbitrary length,
// each with a set of string tags.
// A blob's id is computed from its content (see Sum).
type Client interface {
	// Put drains src and stores the assembled content,
	// replacing any blob (and its tags) already stored under the same id.
	// It returns the new blob's id.
	Put(ctx context.Context, src ChunkSource) (BlobID, error)

	// Tag adds a tag to the blob with the given id.
	// Adding a tag the blob already has is a no-op.
	Tag(ctx context.Context, id BlobID, tag string) error

	// Metadata reports the size and tags of the blob with the given id.
	// An unknown id yields the zero Metadata, not an error.
	Metadata(ctx context.Context, id BlobID) (Metadata, error)
}

var (
	// ErrNotFound is the error returned
	// when a strict store is asked to tag a non-existent blob.
	ErrNotFound = errors.New("not found")

	// ErrTooLarge is the error returned
	// when a chunk source produces more content than a store accepts.
	ErrTooLarge = errors.New("content too large")
)
