// Package blobstore is a content-addressable, in-memory blob store.
//
// A blob store stores arbitrarily sized sequences of bytes,
// or _blobs_,
// and indexes them by their hash,
// which is used as the blob's id.
// Content arrives as a sequence of discontiguous chunks
// (see ChunkSource and the multibuf subpackage);
// the store assembles them into one contiguous buffer before hashing.
//
// Each blob also carries a set of string tags.
// Metadata about a blob (its size and its tags) can be queried by id.
//
// The hash is xxHash64.
// It is fast and evenly distributed but it is not a cryptographic hash,
// and a 64-bit id space makes collisions possible.
// When two different contents do collide,
// the later Put silently replaces the earlier blob.
// The same happens when identical content is uploaded twice,
// which also discards any tags the blob had acquired.
//
// The in-memory implementation lives in the mem subpackage.
// The logging and lru subpackages wrap any Client with extra behavior,
// and the store subpackage builds a Client from a configuration map.
package blobstore
