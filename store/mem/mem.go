// Package mem implements an in-memory blob store.
package mem

import (
	"context"
	"sort"
	"sync"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/store"
)

var _ blobstore.Client = &Store{}

// Store is a memory-based implementation of a blob store.
// It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	blobs  map[blobstore.BlobID]*blob
	max    int64
	strict bool
}

type blob struct {
	data []byte
	tags map[string]struct{}
}

// Option is the type of an option that can be passed to New.
type Option func(*Store)

// MaxSize limits the content length Put accepts.
// Zero (the default) means no limit.
func MaxSize(n int64) Option {
	return func(s *Store) {
		s.max = n
	}
}

// Strict controls what Tag does with an id that has no blob.
// By default it creates an empty blob under that id and tags it.
// A strict store instead returns blobstore.ErrNotFound.
func Strict(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// New produces a new Store.
func New(opts ...Option) *Store {
	s := &Store{
		blobs: make(map[blobstore.BlobID]*blob),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put drains src and stores the result under its hash,
// replacing any blob already stored there.
// Tags on the replaced blob are lost.
func (s *Store) Put(_ context.Context, src blobstore.ChunkSource) (blobstore.BlobID, error) {
	// Drain before locking: a slow source must not hold up other callers.
	contents, err := blobstore.Drain(src, s.max)
	if err != nil {
		return 0, err
	}
	id := blobstore.Sum(contents)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[id] = &blob{data: contents}
	return id, nil
}

// Tag adds a tag to the blob with the given id.
// See Strict for what happens when there is no such blob.
func (s *Store) Tag(_ context.Context, id blobstore.BlobID, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[id]
	if !ok {
		if s.strict {
			return blobstore.ErrNotFound
		}
		b = &blob{}
		s.blobs[id] = b
	}
	if b.tags == nil {
		b.tags = make(map[string]struct{})
	}
	b.tags[tag] = struct{}{}
	return nil
}

// Metadata reports the size and tags of the blob with the given id.
func (s *Store) Metadata(_ context.Context, id blobstore.BlobID) (blobstore.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var md blobstore.Metadata
	b, ok := s.blobs[id]
	if !ok {
		return md, nil
	}
	md.Size = uint64(len(b.data))
	for tag := range b.tags {
		md.Tags = append(md.Tags, tag)
	}
	sort.Strings(md.Tags)
	return md, nil
}

// Len is the number of blobs in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

func init() {
	store.Register("mem", func(_ context.Context, conf map[string]interface{}) (blobstore.Client, error) {
		var opts []Option

		n, ok, err := store.Int(conf, "max_size")
		if err != nil {
			return nil, err
		}
		if ok {
			opts = append(opts, MaxSize(int64(n)))
		}

		strict, ok, err := store.Bool(conf, "strict")
		if err != nil {
			return nil, err
		}
		if ok {
			opts = append(opts, Strict(strict))
		}

		return New(opts...), nil
	})
}
