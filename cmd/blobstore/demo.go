package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/bobg/blobstore/multibuf"
)

// demo uploads a two-chunk blob, tags it, and reads the tags back.
func (c maincmd) demo(ctx context.Context, fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	buf := multibuf.New([]byte("fearless"), []byte("concurrency"))
	id, err := c.c.Put(ctx, buf)
	if err != nil {
		return errors.Wrap(err, "storing blob")
	}
	fmt.Fprintf(c.out, "blobid = %d\n", uint64(id))

	err = c.c.Tag(ctx, id, "rust")
	if err != nil {
		return errors.Wrapf(err, "tagging blob %s", id)
	}

	md, err := c.c.Metadata(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "getting metadata for blob %s", id)
	}
	_, err = fmt.Fprintf(c.out, "tags = %q\n", md.Tags)
	return err
}
