package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/multibuf"
)

type tagList []string

func (t *tagList) String() string { return strings.Join(*t, ",") }

func (t *tagList) Set(s string) error {
	*t = append(*t, s)
	return nil
}

func (c maincmd) put(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var (
		dosplit = fs.Bool("split", false, "split input into content-defined chunks")
		chunk   = fs.Int("chunk", 0, "split input into chunks of this many bytes")
		expect  = fs.String("expect", "", "fail unless the blob gets this id (decimal or 0x-prefixed hex)")
	)
	var tags tagList
	fs.Var(&tags, "tag", "tag to add to the blob (may be repeated)")
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if *dosplit && *chunk > 0 {
		return errors.New("-split and -chunk are mutually exclusive")
	}

	var want blobstore.BlobID
	if *expect != "" {
		want, err = blobstore.ParseBlobID(*expect)
		if err != nil {
			return errors.Wrap(err, "parsing -expect")
		}
	}

	inputs, err := readInputs(ctx, fs.Args())
	if err != nil {
		return err
	}

	var buf *multibuf.MultiBuf
	switch {
	case *dosplit:
		buf, err = multibuf.Split(concat(inputs))
		if err != nil {
			return errors.Wrap(err, "splitting input")
		}
	case *chunk > 0:
		buf, err = multibuf.FromReader(concat(inputs), *chunk)
		if err != nil {
			return errors.Wrap(err, "chunking input")
		}
	default:
		buf = multibuf.New(inputs...)
	}

	id, err := c.c.Put(ctx, buf)
	if err != nil {
		return errors.Wrap(err, "storing blob")
	}
	if *expect != "" && id != want {
		return fmt.Errorf("got blob id %s, want %s", id, want)
	}
	for _, tag := range tags {
		err = c.c.Tag(ctx, id, tag)
		if err != nil {
			return errors.Wrapf(err, "tagging blob %s with %q", id, tag)
		}
	}

	md, err := c.c.Metadata(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "getting metadata for blob %s", id)
	}

	fmt.Fprintf(c.out, "blobid = %s\nchunks = %d\n", id, buf.NumChunks())
	return printMetadata(c.out, md)
}

// readInputs reads the named files concurrently, returning their contents in order.
// With no names it reads standard input.
func readInputs(ctx context.Context, names []string) ([][]byte, error) {
	if len(names) == 0 {
		b, err := ioutil.ReadAll(os.Stdin)
		return [][]byte{b}, errors.Wrap(err, "reading stdin")
	}

	out := make([][]byte, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := ioutil.ReadFile(name)
			if err != nil {
				return errors.Wrapf(err, "reading %s", name)
			}
			out[i] = b
			return nil
		})
	}
	return out, eg.Wait()
}

func concat(inputs [][]byte) io.Reader {
	readers := make([]io.Reader, 0, len(inputs))
	for _, b := range inputs {
		readers = append(readers, bytes.NewReader(b))
	}
	return io.MultiReader(readers...)
}

func printMetadata(w io.Writer, md blobstore.Metadata) error {
	_, err := fmt.Fprintf(w, "size = %d\ntags = %q\n", md.Size, md.Tags)
	return err
}
