// Package lru implements a blob store client that caches blob metadata
// from a nested client in a least-recently-used cache.
package lru

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/store"
)

var _ blobstore.Client = &Client{}

// Client caches the results of Metadata calls on a nested Client.
// Put and Tag pass through to the nested Client
// and evict the affected id from the cache.
type Client struct {
	c *lru.Cache // BlobID->blobstore.Metadata
	n blobstore.Client

	// Held across a miss's nested call and cache fill,
	// and around every eviction,
	// so a miss cannot leave metadata in the cache that a concurrent Put or Tag has outdated.
	mu sync.Mutex
}

// New produces a new Client backed by n and caching metadata for up to size blobs.
func New(n blobstore.Client, size int) (*Client, error) {
	c, err := lru.New(size)
	return &Client{c: c, n: n}, err
}

// Put stores a blob in the nested client.
func (c *Client) Put(ctx context.Context, src blobstore.ChunkSource) (blobstore.BlobID, error) {
	// The nested Put may drain a slow source; only the eviction is locked.
	id, err := c.n.Put(ctx, src)
	if err != nil {
		return id, err
	}

	c.mu.Lock()
	c.c.Remove(id)
	c.mu.Unlock()

	return id, nil
}

// Tag tags a blob in the nested client.
func (c *Client) Tag(ctx context.Context, id blobstore.BlobID, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.n.Tag(ctx, id, tag)
	c.c.Remove(id)
	return err
}

// Metadata gets a blob's metadata from the cache,
// or from the nested client on a miss.
func (c *Client) Metadata(ctx context.Context, id blobstore.BlobID) (blobstore.Metadata, error) {
	if got, ok := c.c.Get(id); ok {
		return copyMetadata(got.(blobstore.Metadata)), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	md, err := c.n.Metadata(ctx, id)
	if err != nil {
		return blobstore.Metadata{}, err
	}
	c.c.Add(id, copyMetadata(md))
	return md, nil
}

func copyMetadata(md blobstore.Metadata) blobstore.Metadata {
	if md.Tags != nil {
		tags := make([]string, len(md.Tags))
		copy(tags, md.Tags)
		md.Tags = tags
	}
	return md
}

func init() {
	store.Register("lru", func(ctx context.Context, conf map[string]interface{}) (blobstore.Client, error) {
		size, ok, err := store.Int(conf, "size")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New(`missing "size" parameter`)
		}
		nested, err := store.Nested(ctx, conf)
		if err != nil {
			return nil, err
		}
		return New(nested, size)
	})
}
