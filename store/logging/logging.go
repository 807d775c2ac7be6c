// Package logging implements a store that delegates everything to a nested store,
// logging operations as they happen.
package logging

import (
	"context"
	"log"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/store"
)

var _ blobstore.Client = &Client{}

type Client struct {
	c blobstore.Client
}

func New(c blobstore.Client) *Client {
	return &Client{c: c}
}

func (c *Client) Put(ctx context.Context, src blobstore.ChunkSource) (blobstore.BlobID, error) {
	id, err := c.c.Put(ctx, src)
	if err != nil {
		log.Printf("ERROR in Put: %s", err)
	} else {
		log.Printf("Put %s", id)
	}
	return id, err
}

func (c *Client) Tag(ctx context.Context, id blobstore.BlobID, tag string) error {
	err := c.c.Tag(ctx, id, tag)
	if err != nil {
		log.Printf("ERROR in Tag(%s, %q): %s", id, tag, err)
	} else {
		log.Printf("Tag(%s, %q)", id, tag)
	}
	return err
}

func (c *Client) Metadata(ctx context.Context, id blobstore.BlobID) (blobstore.Metadata, error) {
	md, err := c.c.Metadata(ctx, id)
	if err != nil {
		log.Printf("ERROR in Metadata(%s): %s", id, err)
	} else {
		log.Printf("Metadata(%s): size=%d tags=%q", id, md.Size, md.Tags)
	}
	return md, err
}

func init() {
	store.Register("logging", func(ctx context.Context, conf map[string]interface{}) (blobstore.Client, error) {
		nested, err := store.Nested(ctx, conf)
		if err != nil {
			return nil, err
		}
		return New(nested), nil
	})
}
